// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// robustsets_info prints the registered dataset variants and architectures.
//
// Usage:
//
//	robustsets_info [variant...]
//
// Without arguments it reports every registered variant.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/gomlx/robustsets/datasets"
	"github.com/gomlx/robustsets/models"
	"k8s.io/klog/v2"
)

var (
	flagDataPath = flag.String("data", "~/imagenet", "Root location of the dataset, "+
		"only recorded in the descriptor; nothing is read from it.")
	flagArchs = flag.Bool("archs", true, "Also list the registered architectures.")
)

var (
	headerRowStyle = lipgloss.NewStyle().Reverse(true).
			Padding(0, 2, 0, 2).Align(lipgloss.Center)
	oddRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).
			PaddingLeft(1).PaddingRight(1)
	evenRowStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#999")).
			PaddingLeft(1).PaddingRight(1)
)

func newPlainTable() *lgtable.Table {
	return lgtable.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("99"))).
		StyleFunc(func(row, col int) (s lipgloss.Style) {
			switch {
			case row == 1:
				return headerRowStyle
			case row%2 == 0:
				return evenRowStyle
			default:
				return oddRowStyle
			}
		})
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	names := flag.Args()
	explicit := len(names) > 0
	if !explicit {
		names = datasets.Names()
	}

	table := newPlainTable()
	table.Row("Variant", "Classes", "Label space", "Train pipeline", "Test pipeline")
	exitCode := 0
	for _, name := range names {
		ds, err := datasets.FromName(name, *flagDataPath, nil)
		if err != nil {
			// "custom_imagenet" always lands here: it needs an explicit grouping.
			table.Row(name, "-", err.Error(), "-", "-")
			if explicit {
				klog.Errorf("%s: %v", name, err)
				exitCode = 1
			}
			continue
		}
		labelSpace := "identity"
		if m := ds.LabelMapping(); m != nil {
			labelSpace = fmt.Sprintf("%d groups: %s", m.NumGroups(), strings.Join(m.Names(), ", "))
		}
		table.Row(ds.Name(), fmt.Sprintf("%d", ds.NumClasses()), labelSpace,
			ds.TransformTrain().String(), ds.TransformTest().String())
	}
	fmt.Println(table.Render())

	if *flagArchs {
		fmt.Printf("Registered architectures: %s\n", strings.Join(models.Names(), ", "))
	}
	os.Exit(exitCode)
}
