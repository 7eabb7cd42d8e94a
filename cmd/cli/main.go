package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang/glog"
	"github.com/spf13/viper"

	"timetable/internal/school"
	"timetable/internal/solver"
)

func main() {
	// Define arguments
	filePathPtr := flag.String("file", "", "Path to the input file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	configPathPtr := flag.String("config", "", "Path to an optional weights config file (json, yaml or toml)")
	timeLimitPtr := flag.Duration("time", 30*time.Second, "Solver wall-clock budget")
	workersPtr := flag.Int("workers", 8, "Solver worker count")
	demoPtr := flag.Bool("demo", false, "Solve a generated sample school instead of an input file")
	flag.Parse()
	defer glog.Flush()

	// Validate arguments
	if *filePathPtr == "" && !*demoPtr {
		log.Fatal("an input file must be specified (or use -demo)")
	}

	weights := solver.DefaultWeights()
	if *configPathPtr != "" {
		if err := loadWeights(*configPathPtr, &weights); err != nil {
			log.Fatalf("cannot load weights config: %v", err)
		}
	}

	// Extract input
	var input *school.Input
	if *demoPtr {
		input = school.GenerateSample(6, 4)
	} else {
		var err error
		input, err = school.InputFromJson(*filePathPtr)
		if err != nil {
			log.Fatalf("cannot parse input file: %v", err)
		}
	}

	// Build model
	builder := solver.NewBuilder(input, weights)
	if err := builder.Build(); err != nil {
		log.Fatalf("an error occurred during model construction: %v", err)
	}

	stats := builder.Stats()
	glog.Infof("model built: %v instances, %v penalty terms, %v optional intervals",
		stats.LessonInstances, stats.PenaltyTerms, stats.OptionalIntervals)
	for _, rejection := range builder.UnroomableLessons() {
		glog.Warningf("lesson %v has no admissible room: %v", rejection.LessonId, rejection.Reasons)
	}

	// Solve
	solution, err := builder.Solve(solver.Options{
		TimeLimit: *timeLimitPtr,
		Workers:   int32(*workersPtr),
	})
	if err != nil {
		log.Fatalf("an error occurred during solving: %v", err)
	}

	// Marshal output into json
	solutionJson, err := json.MarshalIndent(solution, "", "  ")
	if err != nil {
		log.Fatalf("an error occurred while building output json: %v", err)
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if *outFilePathPtr == "" {
		fmt.Println(string(solutionJson))
	} else {
		if err := os.WriteFile(*outFilePathPtr, solutionJson, 0666); err != nil {
			log.Fatalf("an error occurred while writing to the output file: %v", err)
		}
	}

	fmt.Printf("Status: %v\n", solution.Status)
	fmt.Printf("Wall time: %.2fs\n", solution.WallTime)
	if !solution.Status.Usable() {
		os.Exit(20)
	}
}

func loadWeights(path string, weights *solver.Weights) error {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return err
	}
	return v.Unmarshal(weights)
}
