package cli

import "fmt"

func Run(args []string) error {
	if len(args) == 0 {
		printRootUsage()
		return nil
	}

	switch args[0] {
	case "generate":
		return runGenerate(args[1:])
	case "status":
		return runStatus(args[1:])
	case "report":
		return runReport(args[1:])
	case "select":
		return runSelect(args[1:])
	case "stats":
		return runStats(args[1:])
	case "suggest":
		return runSuggest(args[1:])
	case "help", "-h", "--help":
		printRootUsage()
		return nil
	default:
		printRootUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func printRootUsage() {
	fmt.Println("skillgen: batch skill generation orchestrator")
	fmt.Println()
	fmt.Println("Quick Start:")
	fmt.Println("  skillgen generate")
	fmt.Println("  skillgen generate --batch 01")
	fmt.Println("  skillgen generate --retry")
	fmt.Println("  skillgen status")
	fmt.Println()
	fmt.Println("Generation Commands:")
	fmt.Println("  generate  run generation jobs from the prompts catalog, checkpointing after each skill")
	fmt.Println("  status    progress rollup for the catalog vs the generation state")
	fmt.Println("  report    export the HTML generation report")
	fmt.Println()
	fmt.Println("Corpus Commands:")
	fmt.Println("  select    interactive project-type skill selector")
	fmt.Println("  stats     corpus statistics (skills, lines, examples per category)")
	fmt.Println("  suggest   map a project's dependencies to relevant skills")
	fmt.Println()
	fmt.Println("Run `skillgen <command> -h` for command flags.")
}
