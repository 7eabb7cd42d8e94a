package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"timetable/internal/school"
	"timetable/internal/solver"
)

type benchmarkCase struct {
	Teachers int
	Classes  int
}

type benchmarkResult struct {
	Case              benchmarkCase
	Instances         int
	PenaltyTerms      int
	OptionalIntervals int
	BuildDuration     time.Duration
	SolveWallTime     float64
	Status            solver.Status
	Objective         float64
}

func main() {
	outFilePathPtr := flag.String("out", "", "CSV output path; if empty, results are written into the Standard Output")
	timeLimitPtr := flag.Duration("time", 20*time.Second, "Solver wall-clock budget per case")
	workersPtr := flag.Int("workers", 8, "Solver worker count")
	flag.Parse()

	cases := []benchmarkCase{
		{Teachers: 4, Classes: 2},
		{Teachers: 6, Classes: 4},
		{Teachers: 8, Classes: 6},
		{Teachers: 12, Classes: 8},
	}

	results := make([]benchmarkResult, 0, len(cases))
	for _, c := range cases {
		fmt.Printf("Benchmarking %v teachers, %v classes\n", c.Teachers, c.Classes)

		input := school.GenerateSample(c.Teachers, c.Classes)
		builder := solver.NewBuilder(input, solver.DefaultWeights())

		buildStart := time.Now()
		if err := builder.Build(); err != nil {
			log.Fatalf("an error occurred during model construction: %v", err)
		}
		buildDuration := time.Since(buildStart)

		solution, err := builder.Solve(solver.Options{
			TimeLimit: *timeLimitPtr,
			Workers:   int32(*workersPtr),
		})
		if err != nil {
			log.Fatalf("an error occurred during solving: %v", err)
		}

		stats := builder.Stats()
		results = append(results, benchmarkResult{
			Case:              c,
			Instances:         stats.LessonInstances,
			PenaltyTerms:      stats.PenaltyTerms,
			OptionalIntervals: stats.OptionalIntervals,
			BuildDuration:     buildDuration,
			SolveWallTime:     solution.WallTime,
			Status:            solution.Status,
			Objective:         solution.Objective,
		})
	}

	if err := writeResults(results, *outFilePathPtr); err != nil {
		log.Fatalf("an error occurred while writing results: %v", err)
	}
}

func writeResults(results []benchmarkResult, outFile string) error {
	out := os.Stdout
	if outFile != "" {
		file, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	writer := csv.NewWriter(out)
	defer writer.Flush()

	header := []string{"teachers", "classes", "instances", "penaltyTerms", "optionalIntervals", "buildMs", "solveSeconds", "status", "objective"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{
			strconv.Itoa(r.Case.Teachers),
			strconv.Itoa(r.Case.Classes),
			strconv.Itoa(r.Instances),
			strconv.Itoa(r.PenaltyTerms),
			strconv.Itoa(r.OptionalIntervals),
			strconv.FormatInt(r.BuildDuration.Milliseconds(), 10),
			strconv.FormatFloat(r.SolveWallTime, 'f', 3, 64),
			string(r.Status),
			strconv.FormatFloat(r.Objective, 'f', 0, 64),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	return nil
}
