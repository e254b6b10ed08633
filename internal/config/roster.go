package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/cmcleod/classpulse/internal/domain/model"
)

// rosterFile mirrors the YAML roster schema:
//
//	teachers:
//	  - id: 1
//	    name: Dr. Rajesh Kumar
//	    department: Computer Science
//	    subject: Data Structures
type rosterFile struct {
	Teachers []rosterEntry `koanf:"teachers"`
}

type rosterEntry struct {
	ID         int    `koanf:"id"`
	Name       string `koanf:"name"`
	Department string `koanf:"department"`
	Subject    string `koanf:"subject"`
}

// LoadRoster reads a YAML roster file into the teacher list. File order
// is kept; it becomes the seeding order of the roster.
func LoadRoster(ctx context.Context, path string) ([]model.Teacher, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadRoster, err)
	}

	var rf rosterFile
	if err := k.UnmarshalWithConf("", &rf, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadRoster, err)
	}

	if len(rf.Teachers) == 0 {
		return nil, fmt.Errorf("%w: no teachers defined", ErrInvalidRoster)
	}

	seen := make(map[int]struct{}, len(rf.Teachers))
	out := make([]model.Teacher, 0, len(rf.Teachers))
	for i, entry := range rf.Teachers {
		if entry.ID <= 0 {
			return nil, fmt.Errorf("%w: entry %d: id must be positive", ErrInvalidRoster, i)
		}
		if _, ok := seen[entry.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate teacher id %d", ErrInvalidRoster, entry.ID)
		}
		seen[entry.ID] = struct{}{}

		if strings.TrimSpace(entry.Name) == "" {
			return nil, fmt.Errorf("%w: entry %d: name must not be empty", ErrInvalidRoster, i)
		}
		if strings.TrimSpace(entry.Department) == "" {
			return nil, fmt.Errorf("%w: entry %d: department must not be empty", ErrInvalidRoster, i)
		}

		out = append(out, model.Teacher{
			ID:         entry.ID,
			Name:       entry.Name,
			Department: entry.Department,
			Subject:    entry.Subject,
		})
	}

	return out, nil
}
