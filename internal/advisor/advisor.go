package advisor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// DefaultIndexPath is where the corpus registers its skills.
const DefaultIndexPath = "SKILL_INDEX.md"

// libSkillMap maps a dependency name found in a project's manifests to the
// skill that covers it.
var libSkillMap = map[string]string{
	"react":       "react-best-practices",
	"next":        "nextjs-patterns",
	"express":     "express-rest",
	"fastapi":     "fastapi-patterns",
	"prisma":      "prisma-guide",
	"mongoose":    "mongodb-patterns",
	"sequelize":   "database-migration",
	"redux":       "state-management",
	"zustand":     "state-management",
	"tailwindcss": "tailwind-patterns",
	"jest":        "jest-patterns",
	"pytest":      "pytest-patterns",
	"docker":      "docker-patterns",
	"kubernetes":  "kubernetes-deployment",
	"terraform":   "terraform-infrastructure",
	"stripe":      "stripe-integration",
	"socket.io":   "websocket-patterns",
	"kafka":       "kafka-streams",
	"rabbitmq":    "rabbitmq-patterns",
	"pydantic":    "python-standards",
	"pandas":      "data-preprocessing",
	"numpy":       "data-preprocessing",
	"pytorch":     "pytorch-deployment",
	"torch":       "pytorch-deployment",
	"tensorflow":  "model-training",
	"openai":      "llm-integration",
	"anthropic":   "llm-integration",
	"langchain":   "ai-agents",
}

// Suggestion links one detected dependency to the skill that covers it, and
// whether that skill is registered in the index.
type Suggestion struct {
	Library string `json:"library"`
	Skill   string `json:"skill"`
	Indexed bool   `json:"indexed"`
}

type Report struct {
	Target       string       `json:"target"`
	Dependencies []string     `json:"dependencies"`
	Suggestions  []Suggestion `json:"suggestions"`
	KnownSkills  int          `json:"known_skills"`
}

// Analyze scans the target project's dependency manifests and maps each
// recognized library to a skill, noting whether the skill is indexed.
func Analyze(targetDir, indexPath string) (Report, error) {
	deps, err := ScanDependencies(targetDir)
	if err != nil {
		return Report{}, err
	}
	known, err := LoadKnownSkills(indexPath)
	if err != nil {
		return Report{}, err
	}

	suggestions := make([]Suggestion, 0)
	seen := make(map[string]bool)
	for _, dep := range deps {
		skill, ok := libSkillMap[strings.ToLower(dep)]
		if !ok || seen[skill] {
			continue
		}
		seen[skill] = true
		suggestions = append(suggestions, Suggestion{
			Library: dep,
			Skill:   skill,
			Indexed: known[skill],
		})
	}
	sort.Slice(suggestions, func(i, j int) bool { return suggestions[i].Skill < suggestions[j].Skill })

	return Report{
		Target:       targetDir,
		Dependencies: deps,
		Suggestions:  suggestions,
		KnownSkills:  len(known),
	}, nil
}

// ScanDependencies collects dependency names from package.json and
// requirements.txt in the target directory. Missing manifests are fine; a
// target with neither yields an empty list.
func ScanDependencies(targetDir string) ([]string, error) {
	deps := make([]string, 0)
	seen := make(map[string]bool)
	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		deps = append(deps, name)
	}

	pkgPath := filepath.Join(targetDir, "package.json")
	data, err := os.ReadFile(pkgPath)
	if err == nil {
		var pkg struct {
			Dependencies    map[string]string `json:"dependencies"`
			DevDependencies map[string]string `json:"devDependencies"`
		}
		if err := json.Unmarshal(data, &pkg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", pkgPath, err)
		}
		for name := range pkg.Dependencies {
			add(name)
		}
		for name := range pkg.DevDependencies {
			add(name)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", pkgPath, err)
	}

	reqPath := filepath.Join(targetDir, "requirements.txt")
	data, err = os.ReadFile(reqPath)
	if err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "-") {
				continue
			}
			add(requirementName(line))
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", reqPath, err)
	}

	sort.Strings(deps)
	return deps, nil
}

// requirementName strips version specifiers and extras from one
// requirements.txt line.
func requirementName(line string) string {
	for _, sep := range []string{"==", ">=", "<=", "~=", "!=", ">", "<", "[", ";", " "} {
		if i := strings.Index(line, sep); i >= 0 {
			line = line[:i]
		}
	}
	return strings.TrimSpace(line)
}

var indexLinkPattern = regexp.MustCompile(`\[([\w-]+)\]\(`)

// LoadKnownSkills parses the skill index for registered skill names. An
// absent index yields an empty set; the caller decides how loudly to warn.
func LoadKnownSkills(indexPath string) (map[string]bool, error) {
	if strings.TrimSpace(indexPath) == "" {
		indexPath = DefaultIndexPath
	}
	data, err := os.ReadFile(indexPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("read skill index %s: %w", indexPath, err)
	}
	known := make(map[string]bool)
	for _, m := range indexLinkPattern.FindAllStringSubmatch(string(data), -1) {
		known[m[1]] = true
	}
	return known, nil
}
