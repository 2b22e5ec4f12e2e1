package stats

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// SkillFileName is the canonical document name the corpus uses for one skill.
const SkillFileName = "SKILL.md"

type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// Summary describes the skill corpus under one root.
type Summary struct {
	TotalSkills  int             `json:"total_skills"`
	TotalLines   int             `json:"total_lines"`
	CodeExamples int             `json:"code_examples"`
	Categories   []CategoryCount `json:"categories"`
}

// Collect walks root for SKILL.md files and aggregates corpus statistics.
// The category is the top-level directory the skill lives under.
func Collect(root string) (Summary, error) {
	if strings.TrimSpace(root) == "" {
		root = "."
	}

	counts := make(map[string]int)
	summary := Summary{}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			name := d.Name()
			if name != "." && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != SkillFileName {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		parts := strings.Split(filepath.ToSlash(rel), "/")
		if len(parts) >= 2 {
			counts[parts[0]]++
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read skill file %s: %w", path, err)
		}
		content := string(data)
		summary.TotalSkills++
		summary.TotalLines += strings.Count(content, "\n")
		// Fences come in pairs; two markers delimit one example.
		summary.CodeExamples += strings.Count(content, "```") / 2
		return nil
	})
	if err != nil {
		return Summary{}, fmt.Errorf("scan skill corpus %s: %w", root, err)
	}

	categories := make([]CategoryCount, 0, len(counts))
	for cat, n := range counts {
		categories = append(categories, CategoryCount{Category: cat, Count: n})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Category < categories[j].Category })
	summary.Categories = categories
	return summary, nil
}

// RenderMarkdown produces the statistics report in the repo's README style.
func RenderMarkdown(s Summary, now time.Time) string {
	var b strings.Builder
	b.WriteString("# Skills Repository Statistics\n\n")
	fmt.Fprintf(&b, "**Generated**: %s\n\n", now.Format("2006-01-02 15:04:05"))
	b.WriteString("## Overall Statistics\n\n")
	fmt.Fprintf(&b, "- **Total Skills**: %d\n", s.TotalSkills)
	fmt.Fprintf(&b, "- **Total Lines**: %d\n", s.TotalLines)
	fmt.Fprintf(&b, "- **Code Examples**: %d\n", s.CodeExamples)
	fmt.Fprintf(&b, "- **Categories**: %d\n\n", len(s.Categories))
	b.WriteString("## Skills by Category\n\n")
	b.WriteString("| Category | Count |\n")
	b.WriteString("|----------|-------|\n")
	for _, c := range s.Categories {
		fmt.Fprintf(&b, "| %s | %d |\n", categoryTitle(c.Category), c.Count)
	}
	return b.String()
}

// categoryTitle turns "01-foundations" into "Foundations".
func categoryTitle(dir string) string {
	name := dir
	if i := strings.Index(name, "-"); i >= 0 {
		name = name[i+1:]
	}
	words := strings.Split(strings.ReplaceAll(name, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
