package cli

import (
	"flag"
	"fmt"
	"time"

	"github.com/AmnadTaowsoam/cerebratechai-claude-skills/internal/advisor"
	"github.com/AmnadTaowsoam/cerebratechai-claude-skills/internal/stats"
)

func runStats(args []string) error {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	root := fs.String("root", ".", "corpus root to scan for SKILL.md files")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	summary, err := stats.Collect(*root)
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(summary)
	}
	fmt.Print(stats.RenderMarkdown(summary, time.Now()))
	return nil
}

func runSuggest(args []string) error {
	fs := flag.NewFlagSet("suggest", flag.ContinueOnError)
	target := fs.String("target", "", "project directory to scan for dependency manifests")
	index := fs.String("index", advisor.DefaultIndexPath, "skill index path")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *target == "" {
		fs.Usage()
		return fmt.Errorf("--target is required")
	}

	report, err := advisor.Analyze(*target, *index)
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(report)
	}

	fmt.Printf("target: %s\n", report.Target)
	fmt.Printf("dependencies_found: %d\n", len(report.Dependencies))
	if len(report.Suggestions) == 0 {
		fmt.Println("no skill suggestions for the detected dependencies")
		return nil
	}
	fmt.Println("suggested skills:")
	for _, s := range report.Suggestions {
		marker := "indexed"
		if !s.Indexed {
			marker = "missing from index"
		}
		fmt.Printf("  - %s (via %s, %s)\n", s.Skill, s.Library, marker)
	}
	return nil
}
