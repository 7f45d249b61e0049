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

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/vearch/annverify/internal/catalog"
	"github.com/vearch/annverify/internal/config"
	"github.com/vearch/annverify/internal/engine/flat"
	"github.com/vearch/annverify/internal/entity"
	"github.com/vearch/annverify/internal/pkg/errutil"
	"github.com/vearch/annverify/internal/pkg/log"
	"github.com/vearch/annverify/internal/pkg/vjson"
	"github.com/vearch/annverify/internal/runner"
	"github.com/vearch/annverify/internal/scalar"
	"github.com/vearch/annverify/internal/validator"
)

var (
	BuildVersion = "0.0"
	BuildTime    = "0"
	CommitID     = "xxxxx"

	confPath   string
	indexType  string
	metric     string
	binary     bool
	resultPath string
	checkPath  string
	list       bool
	scalarKind string
	printRes   bool
	jsonOut    bool
	version    bool
)

func init() {
	pflag.StringVar(&confPath, "conf", "", "annverify config path, defaults apply when empty")
	pflag.StringVar(&indexType, "index", "", "index type to verify, every enabled type when empty")
	pflag.StringVar(&metric, "metric", "", "metric type, every metric of the index family when empty")
	pflag.BoolVar(&binary, "binary", false, "generate binary vectors")
	pflag.StringVar(&resultPath, "result", "", "write the search result of a single case to this file")
	pflag.StringVar(&checkPath, "check", "", "validate a result file written by --result instead of searching")
	pflag.BoolVar(&list, "list", false, "print the catalog config of every enabled index type and metric")
	pflag.StringVar(&scalarKind, "scalar", "", "print the scalar index params of a value kind, or all")
	pflag.BoolVar(&printRes, "print", false, "print id and distance grids of each result")
	pflag.BoolVar(&jsonOut, "json", false, "print reports as json")
	pflag.BoolVar(&version, "version", false, "print version and exit")
}

func main() {
	pflag.Parse()
	config.SetConfigVersion(BuildVersion, BuildTime, CommitID)
	if version {
		fmt.Printf("annverify version:[%s] build time:[%s] commitID:[%s]\n",
			config.GetBuildVersion(), config.GetBuildTime(), config.GetCommitID())
		return
	}

	if confPath != "" {
		if err := config.InitConfig(confPath); err != nil {
			log.Errorf("load config: %v", err)
			os.Exit(1)
		}
		log.Infof("The Config File Is: %v", confPath)
	}
	conf := config.Conf()
	cat := conf.Catalog()

	switch {
	case list:
		printCatalog(cat)
	case scalarKind != "":
		if err := printScalar(scalarKind); err != nil {
			log.Errorf("%v", err)
			os.Exit(1)
		}
	default:
		if failed := verify(conf, cat); failed > 0 {
			log.Errorf("%d cases failed", failed)
			log.Flush()
			os.Exit(1)
		}
	}
	log.Flush()
}

func printCatalog(cat *catalog.Catalog) {
	for _, p := range cat.Pairs() {
		fmt.Printf("%s %s %s\n", p.IndexType, p.Metric, cat.GetConfig(p.IndexType, p.Metric))
	}
}

func printScalar(name string) error {
	kinds := scalar.AllKinds()
	if !strings.EqualFold(name, "all") {
		kind, err := scalar.ParseValueKind(name)
		if err != nil {
			return err
		}
		kinds = []scalar.ValueKind{kind}
	}
	for _, kind := range kinds {
		fmt.Printf("%s: %s\n", kind, strings.Join(scalar.GetIndexTypes(kind), ","))
		scalar.PrintMapParams(os.Stdout, scalar.GenParams(kind))
	}
	return nil
}

func cases(conf *config.Config, cat *catalog.Catalog) []runner.Case {
	all := runner.Cases(cat, conf.Dataset.NB, conf.Dataset.NQ, conf.Dataset.Seed)
	var out []runner.Case
	for _, c := range all {
		if indexType != "" && !strings.EqualFold(string(c.IndexType), indexType) {
			continue
		}
		if metric != "" && !strings.EqualFold(string(c.Metric), metric) {
			continue
		}
		if binary && !c.Binary {
			continue
		}
		out = append(out, c)
	}
	if len(out) == 0 && indexType != "" {
		// let the runner report why the pair is not runnable
		it := entity.IndexType(strings.ToUpper(indexType))
		out = append(out, runner.Case{
			IndexType: it,
			Metric:    entity.MetricType(strings.ToUpper(metric)),
			Binary:    binary || it.Family() == entity.FamilyBinary,
			NB:        conf.Dataset.NB,
			NQ:        conf.Dataset.NQ,
			Seed:      conf.Dataset.Seed,
		})
	}
	return out
}

func verify(conf *config.Config, cat *catalog.Catalog) int {
	reg := validator.NewRegistry()
	v := validator.New(
		validator.WithTolerance(conf.Search.Tolerance),
		validator.WithStrictTypes(conf.StrictTypes()...),
		validator.WithMetrics(validator.NewMetrics(reg)),
	)
	r := runner.New(cat, v, flat.Factory)
	ctx := context.Background()

	todo := cases(conf, cat)
	if (resultPath != "" || checkPath != "") && len(todo) != 1 {
		log.Errorf("--result and --check need exactly one case, %d selected", len(todo))
		return 1
	}

	if checkPath != "" {
		res, err := runner.LoadResult(checkPath)
		if err != nil {
			log.Errorf("%v", err)
			return 1
		}
		report, err := r.Check(ctx, todo[0], res)
		printReport(report)
		if err != nil {
			log.Errorf("%s: %v", todo[0], err)
			return 1
		}
		return 0
	}

	outs, err := r.RunAll(ctx, todo)
	failed := 0
	if merr, ok := err.(*errutil.MultiError); ok {
		failed = merr.Len()
		log.Errorf("%v", merr)
	}
	for _, out := range outs {
		if printRes {
			out.Result.Fprint(os.Stdout)
		}
		if resultPath != "" {
			if serr := runner.SaveResult(resultPath, out.Result); serr != nil {
				log.Errorf("%v", serr)
				failed++
			}
		}
		printReport(out.Report)
	}

	if mfs, err := reg.Gather(); err == nil {
		for _, mf := range mfs {
			log.Debugf("metric %s: %d series", mf.GetName(), len(mf.GetMetric()))
		}
	}
	return failed
}

func printReport(report *validator.Report) {
	if report == nil {
		return
	}
	if !jsonOut {
		fmt.Println(report)
		return
	}
	bs, err := vjson.MarshalIndent(report)
	if err != nil {
		log.Errorf("%v", err)
		return
	}
	fmt.Println(string(bs))
}
