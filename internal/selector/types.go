package selector

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultTypesPath is where a repo can override the built-in project types.
const DefaultTypesPath = "tools/project-types.yaml"

// ProjectType groups the skills recommended for one kind of project, in
// three tiers mirroring how the skill corpus is consumed.
type ProjectType struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Essential   []string `yaml:"essential"`
	Important   []string `yaml:"important,omitempty"`
	Optional    []string `yaml:"optional,omitempty"`
}

type typesFile struct {
	ProjectTypes []ProjectType `yaml:"project_types"`
}

// LoadTypes reads project-type definitions from a YAML file. An absent file
// falls back to the compiled-in defaults; a malformed file is an error.
func LoadTypes(path string) ([]ProjectType, error) {
	if strings.TrimSpace(path) == "" {
		path = DefaultTypesPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultTypes(), nil
		}
		return nil, fmt.Errorf("read project types %s: %w", path, err)
	}
	return ParseTypesYAML(path, data)
}

func ParseTypesYAML(path string, data []byte) ([]ProjectType, error) {
	var file typesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse project types %s: %w", path, err)
	}
	if len(file.ProjectTypes) == 0 {
		return nil, fmt.Errorf("project types %s: no project_types defined", path)
	}
	for i, pt := range file.ProjectTypes {
		if strings.TrimSpace(pt.Name) == "" {
			return nil, fmt.Errorf("project types %s: entry #%d has empty name", path, i+1)
		}
		if len(pt.Essential) == 0 {
			return nil, fmt.Errorf("project types %s: %q has no essential skills", path, pt.Name)
		}
	}
	return file.ProjectTypes, nil
}

// SkillListMarkdown renders the saved skill-list document for one project type.
func SkillListMarkdown(pt ProjectType) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Skills for %s\n", pt.Name)
	fmt.Fprintf(&b, "# %s\n\n", pt.Description)
	writeTier(&b, "Essential Skills", pt.Essential)
	writeTier(&b, "Important Skills", pt.Important)
	writeTier(&b, "Optional Skills", pt.Optional)
	return b.String()
}

func writeTier(b *strings.Builder, title string, skills []string) {
	if len(skills) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", title)
	for _, s := range skills {
		fmt.Fprintf(b, "- %s\n", s)
	}
	b.WriteString("\n")
}

// KickoffPrompt renders the ready-to-paste prompt combining the project's
// essential and important skills.
func KickoffPrompt(pt ProjectType) string {
	skills := append(append([]string{}, pt.Essential...), pt.Important...)
	lines := make([]string, 0, len(skills))
	for _, s := range skills {
		lines = append(lines, "- "+s)
	}
	return fmt.Sprintf(`I'm building a %s (%s).

Please help me implement this following these skills:

%s

Requirements:
1. Follow all best practices from these skills
2. Include proper error handling
3. Add security considerations
4. Ensure production-ready code
5. Include testing strategies

Let's start with [describe what you want to build].
`, pt.Name, pt.Description, strings.Join(lines, "\n"))
}

// SkillListFileName returns the per-project-type output file name.
func SkillListFileName(pt ProjectType) string {
	slug := strings.ToLower(strings.TrimSpace(pt.Name))
	slug = strings.ReplaceAll(slug, "/", "_")
	slug = strings.ReplaceAll(slug, " ", "_")
	return "skills_" + slug + ".txt"
}
