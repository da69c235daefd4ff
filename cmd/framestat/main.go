// Copyright 2022 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Framestat summarizes frame time captures and compares them.
//
// Usage:
//
//	framestat [flags] capture.csv [capture.json ...]
//	framestat -scan dir
//
// Each input file is a PresentMon-style CSV capture or a
// CapFrameX-style JSON capture. Framestat prints the average frame
// rate, low percentiles, frame time percentiles, and a stutter count
// for each capture, one column per file:
//
//	$ framestat before=run1.csv after=run2.csv
//	                before      after       delta
//	process         game.exe    game.exe
//	frames          9012        10876
//	avg fps         150.2       181.3       +20.71%
//	...
//
// When exactly two captures are given, the last column is the relative
// change from the first to the second.
//
// An input may be written label=path to name its column. By default
// the column is named after the path.
//
// The -format flag selects the output format: "text" (the default),
// "csv" with one row per capture, or "json" with one object per
// capture. With -series, which requires -format json, the output also
// includes the frame time, timestamp, and frame rate series, reduced
// to at most 5000 points.
//
// The -scan flag lists the most recent JSON captures under a
// directory instead of summarizing files. "-scan default" searches
// CapFrameX's capture directory. The -n flag limits the number of
// paths listed.
package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"golang.org/x/framestat/cmd/framestat/internal/texttab"
	"golang.org/x/framestat/framedir"
	"golang.org/x/framestat/framefmt"
	"golang.org/x/framestat/framemath"
)

var exit = os.Exit // replaced during testing

var errUsage = errors.New("usage")

func main() {
	log.SetPrefix("framestat: ")
	log.SetFlags(0)

	err := framestat(os.Stdout, os.Stderr, os.Args[1:])
	if err == errUsage {
		exit(2)
	} else if err != nil {
		log.Fatal(err)
	}
}

func framestat(w, wErr io.Writer, args []string) error {
	flags := flag.NewFlagSet("framestat", flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		fmt.Fprintf(wErr, "usage: framestat [flags] capture.csv [capture.json ...]\n")
		fmt.Fprintf(wErr, "       framestat -scan dir\n")
		flags.PrintDefaults()
	}
	flagFormat := flags.String("format", "text", "print results in `format`: text, csv, json")
	flagSeries := flags.Bool("series", false, "include display series in output (requires -format json)")
	flagScan := flags.String("scan", "", "list recent captures under `dir` (\"default\" for the CapFrameX directory)")
	flagN := flags.Int("n", framedir.DefaultLimit, "list at most `n` captures with -scan")
	if err := flags.Parse(args); err != nil {
		return errUsage
	}

	if *flagScan != "" {
		if flags.NArg() != 0 {
			flags.Usage()
			return errUsage
		}
		return scan(w, *flagScan, *flagN)
	}

	var format func(io.Writer, []string, []*framemath.Metrics) error
	switch *flagFormat {
	case "text":
		format = formatText
	case "csv":
		format = formatCSV
	case "json":
		series := *flagSeries
		format = func(w io.Writer, labels []string, ms []*framemath.Metrics) error {
			return formatJSON(w, labels, ms, series)
		}
	default:
		fmt.Fprintf(wErr, "unknown -format %q\n", *flagFormat)
		flags.Usage()
		return errUsage
	}
	if *flagSeries && *flagFormat != "json" {
		fmt.Fprintf(wErr, "-series requires -format json\n")
		flags.Usage()
		return errUsage
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return errUsage
	}

	files := framefmt.Files{Paths: flags.Args(), AllowLabels: true}
	var labels []string
	var ms []*framemath.Metrics
	for files.Scan() {
		labels = append(labels, files.Label())
		ms = append(ms, framemath.Compute(files.Capture()))
	}
	if err := files.Err(); err != nil {
		return err
	}
	return format(w, labels, ms)
}

func scan(w io.Writer, dir string, n int) error {
	if dir == "default" {
		dir = framedir.DefaultDir()
		if dir == "" {
			return fmt.Errorf("no default capture directory: APPDATA is not set")
		}
	}
	paths, err := framedir.RecentDir(dir, n)
	if err != nil {
		return err
	}
	for _, p := range paths {
		if _, err := fmt.Fprintln(w, p); err != nil {
			return err
		}
	}
	return nil
}

// A metricRow is one line of the text report.
type metricRow struct {
	label string
	// delta is the name of the framemath.Delta for this row, or
	// "" if the row is not compared.
	delta  string
	format func(m *framemath.Metrics) string
}

func fps(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }
func msec(v float64) string  { return strconv.FormatFloat(v, 'f', 2, 64) + "ms" }

var textRows = []metricRow{
	{"process", "", func(m *framemath.Metrics) string { return m.ProcessName }},
	{"frames", "", func(m *framemath.Metrics) string { return strconv.Itoa(m.FrameCount) }},
	{"duration", "", func(m *framemath.Metrics) string { return strconv.FormatFloat(m.DurationSecs, 'f', 2, 64) + "s" }},
	{"avg fps", "avg", func(m *framemath.Metrics) string { return fps(m.AvgFPS) }},
	{"median fps", "median", func(m *framemath.Metrics) string { return fps(m.MedianFPS) }},
	{"min fps", "min", func(m *framemath.Metrics) string { return fps(m.MinFPS) }},
	{"max fps", "", func(m *framemath.Metrics) string { return fps(m.MaxFPS) }},
	{"0.1% low", "0.1% low", func(m *framemath.Metrics) string { return fps(m.P01FPS) }},
	{"1% low", "1% low", func(m *framemath.Metrics) string { return fps(m.P1FPS) }},
	{"5% low", "", func(m *framemath.Metrics) string { return fps(m.P5FPS) }},
	{"p95 fps", "", func(m *framemath.Metrics) string { return fps(m.P95FPS) }},
	{"p99 fps", "", func(m *framemath.Metrics) string { return fps(m.P99FPS) }},
	{"avg frame time", "avg frame time", func(m *framemath.Metrics) string { return msec(m.AvgFrameTime) }},
	{"p95 frame time", "", func(m *framemath.Metrics) string { return msec(m.P95FrameTime) }},
	{"p99 frame time", "p99 frame time", func(m *framemath.Metrics) string { return msec(m.P99FrameTime) }},
	{"p99.9 frame time", "", func(m *framemath.Metrics) string { return msec(m.P999FrameTime) }},
	{"stutters", "", func(m *framemath.Metrics) string { return strconv.Itoa(m.StutterCount) }},
	{"stutter", "stutter", func(m *framemath.Metrics) string { return strconv.FormatFloat(m.StutterPct, 'f', 2, 64) + "%" }},
	{"dropped", "", func(m *framemath.Metrics) string { return strconv.Itoa(m.DroppedFrames) }},
	{"skipped rows", "", func(m *framemath.Metrics) string { return strconv.Itoa(m.SkippedFrames) }},
}

func formatText(w io.Writer, labels []string, ms []*framemath.Metrics) error {
	deltas := make(map[string]framemath.Delta)
	if len(ms) == 2 {
		for _, d := range framemath.Compare(ms[0], ms[1]) {
			deltas[d.Name] = d
		}
	}

	var tab texttab.Table
	tab.Row().Cell("")
	for _, l := range labels {
		tab.Cell(l, texttab.Right)
	}
	if len(deltas) > 0 {
		tab.Cell("delta", texttab.Right)
	}
	for _, row := range textRows {
		tab.Row().Cell(row.label, texttab.Left)
		for _, m := range ms {
			tab.Cell(row.format(m), texttab.Right)
		}
		if d, ok := deltas[row.delta]; ok {
			tab.Cell(d.String(), texttab.Right)
		}
	}
	return tab.Format(w)
}

var csvHeader = []string{
	"label", "file_name", "process_name", "duration_secs", "frame_count",
	"avg_fps", "min_fps", "max_fps", "p01_fps", "p1_fps", "p5_fps", "median_fps", "p95_fps", "p99_fps",
	"avg_frametime", "p95_frametime", "p99_frametime", "p999_frametime",
	"stutter_count", "stutter_pct", "dropped_frames", "skipped_frames",
}

func formatCSV(w io.Writer, labels []string, ms []*framemath.Metrics) error {
	f := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	cw := csv.NewWriter(w)
	cw.Write(csvHeader)
	for i, m := range ms {
		cw.Write([]string{
			labels[i], m.FileName, m.ProcessName, f(m.DurationSecs), strconv.Itoa(m.FrameCount),
			f(m.AvgFPS), f(m.MinFPS), f(m.MaxFPS), f(m.P01FPS), f(m.P1FPS), f(m.P5FPS), f(m.MedianFPS), f(m.P95FPS), f(m.P99FPS),
			f(m.AvgFrameTime), f(m.P95FrameTime), f(m.P99FrameTime), f(m.P999FrameTime),
			strconv.Itoa(m.StutterCount), f(m.StutterPct), strconv.Itoa(m.DroppedFrames), strconv.Itoa(m.SkippedFrames),
		})
	}
	cw.Flush()
	return cw.Error()
}

// jsonRecord is the JSON form of one capture's metrics. Its series
// fields shadow those of Metrics so they can be omitted.
type jsonRecord struct {
	Label string `json:"label"`
	*framemath.Metrics
	FrameTimes []float64 `json:"frametimes,omitempty"`
	Timestamps []float64 `json:"timestamps,omitempty"`
	FPSValues  []float64 `json:"fps_values,omitempty"`
}

func formatJSON(w io.Writer, labels []string, ms []*framemath.Metrics, series bool) error {
	recs := make([]jsonRecord, len(ms))
	for i, m := range ms {
		recs[i] = jsonRecord{Label: labels[i], Metrics: m}
		if series {
			recs[i].FrameTimes = m.FrameTimes
			recs[i].Timestamps = m.Timestamps
			recs[i].FPSValues = m.FPSValues
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "\t")
	return enc.Encode(recs)
}
