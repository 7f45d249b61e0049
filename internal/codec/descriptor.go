// Copyright 2019 The Vearch Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License.

package codec

import (
	"github.com/vearch/annverify/internal/pkg/log"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/reflect/protoregistry"
	"google.golang.org/protobuf/types/descriptorpb"
)

// The messages below mirror the index build cgo protocol:
//
//	message KeyValuePair { string key = 1; string value = 2; }
//	message TypeParams   { repeated KeyValuePair params = 1; }
//	message IndexParams  { repeated KeyValuePair params = 1; }
//	message ScalarField  { repeated bool bool_data = 1; repeated int64 long_data = 2;
//	                       repeated double double_data = 3; repeated string string_data = 4; }
const (
	protoPackage = "annverify.indexcgo"

	kvMessage     = "KeyValuePair"
	typeMessage   = "TypeParams"
	indexMessage  = "IndexParams"
	scalarMessage = "ScalarField"
)

var (
	kvDesc     protoreflect.MessageDescriptor
	typeDesc   protoreflect.MessageDescriptor
	indexDesc  protoreflect.MessageDescriptor
	scalarDesc protoreflect.MessageDescriptor
)

func field(name string, number int32, label descriptorpb.FieldDescriptorProto_Label,
	typ descriptorpb.FieldDescriptorProto_Type, typeName string) *descriptorpb.FieldDescriptorProto {
	f := &descriptorpb.FieldDescriptorProto{
		Name:     proto.String(name),
		JsonName: proto.String(name),
		Number:   proto.Int32(number),
		Label:    label.Enum(),
		Type:     typ.Enum(),
	}
	if typeName != "" {
		f.TypeName = proto.String(typeName)
	}
	return f
}

func paramsMessage(name string) *descriptorpb.DescriptorProto {
	return &descriptorpb.DescriptorProto{
		Name: proto.String(name),
		Field: []*descriptorpb.FieldDescriptorProto{
			field("params", 1, descriptorpb.FieldDescriptorProto_LABEL_REPEATED,
				descriptorpb.FieldDescriptorProto_TYPE_MESSAGE, "."+protoPackage+"."+kvMessage),
		},
	}
}

func init() {
	optional := descriptorpb.FieldDescriptorProto_LABEL_OPTIONAL
	repeated := descriptorpb.FieldDescriptorProto_LABEL_REPEATED
	fdp := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("annverify/indexcgo.proto"),
		Package: proto.String(protoPackage),
		Syntax:  proto.String("proto3"),
		MessageType: []*descriptorpb.DescriptorProto{
			{
				Name: proto.String(kvMessage),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("key", 1, optional, descriptorpb.FieldDescriptorProto_TYPE_STRING, ""),
					field("value", 2, optional, descriptorpb.FieldDescriptorProto_TYPE_STRING, ""),
				},
			},
			paramsMessage(typeMessage),
			paramsMessage(indexMessage),
			{
				Name: proto.String(scalarMessage),
				Field: []*descriptorpb.FieldDescriptorProto{
					field("bool_data", 1, repeated, descriptorpb.FieldDescriptorProto_TYPE_BOOL, ""),
					field("long_data", 2, repeated, descriptorpb.FieldDescriptorProto_TYPE_INT64, ""),
					field("double_data", 3, repeated, descriptorpb.FieldDescriptorProto_TYPE_DOUBLE, ""),
					field("string_data", 4, repeated, descriptorpb.FieldDescriptorProto_TYPE_STRING, ""),
				},
			},
		},
	}
	fd, err := protodesc.NewFile(fdp, new(protoregistry.Files))
	if err != nil {
		log.Panicf("build indexcgo descriptors: %v", err)
	}
	msgs := fd.Messages()
	kvDesc = msgs.ByName(kvMessage)
	typeDesc = msgs.ByName(typeMessage)
	indexDesc = msgs.ByName(indexMessage)
	scalarDesc = msgs.ByName(scalarMessage)
}
