package roles

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DocHatty/Vulpes-Celare-sub003/pkg/models"
)

// roleFile is the on-disk shape of a role override file.
type roleFile struct {
	Roles map[string]roleEntry `yaml:"roles"`
}

type roleEntry struct {
	Prompt string   `yaml:"prompt"`
	Tools  []string `yaml:"tools"`
}

// LoadFile reads a YAML role override file and returns a Table with the
// overrides applied on top of the defaults. Roles absent from the file
// keep their built-in prompt and tool set; unknown role names are an error
// since they would silently never be used.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read role file: %w", err)
	}

	var rf roleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parse role file: %w", err)
	}

	prompts := make(map[models.Role]string, len(defaultPrompts))
	tools := make(map[models.Role][]string, len(defaultTools))
	for r, p := range defaultPrompts {
		prompts[r] = p
	}
	for r, ts := range defaultTools {
		tools[r] = ts
	}

	for name, entry := range rf.Roles {
		role := models.Role(name)
		if !role.Valid() {
			return nil, fmt.Errorf("role file %s names unknown role %q", path, name)
		}
		if entry.Prompt != "" {
			prompts[role] = entry.Prompt
		}
		if len(entry.Tools) > 0 {
			tools[role] = entry.Tools
		}
	}

	return &Table{prompts: prompts, tools: tools}, nil
}
