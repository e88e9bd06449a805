// Package catalog holds the static learning path templates and the
// assessment question bank. The data is embedded at build time and
// validated once at init; everything returned is a copy.
package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed data/paths.yaml
var pathsYAML []byte

//go:embed data/questions.yaml
var questionsYAML []byte

// ErrPathNotFound is returned when a learning path id is not in the catalog.
var ErrPathNotFound = errors.New("learning path not found")

// ErrQuestionNotFound is returned when a question id is not in the catalog.
var ErrQuestionNotFound = errors.New("assessment question not found")

// Section is a named, ordered group of assessment questions.
type Section struct {
	Name      string     `yaml:"name"`
	Questions []Question `yaml:"questions"`
}

type pathsFile struct {
	Paths []LearningPath `yaml:"paths"`
}

type questionsFile struct {
	Sections []Section `yaml:"sections"`
}

// index holds the decoded catalog with lookup maps.
type index struct {
	paths      []LearningPath
	pathByID   map[string]*LearningPath
	sections   []Section
	questionBy map[string]*Question
}

// c is the package-level catalog, built by init.
var c *index

func init() {
	idx, err := load(pathsYAML, questionsYAML)
	if err != nil {
		panic(err)
	}
	c = idx
}

// load decodes and validates catalog data.
func load(pathsData, questionsData []byte) (*index, error) {
	var pf pathsFile
	if err := decodeStrict(pathsData, &pf); err != nil {
		return nil, fmt.Errorf("decode learning paths: %w", err)
	}
	var qf questionsFile
	if err := decodeStrict(questionsData, &qf); err != nil {
		return nil, fmt.Errorf("decode assessment questions: %w", err)
	}

	if err := validate(pf.Paths, qf.Sections); err != nil {
		return nil, err
	}

	idx := &index{
		paths:      pf.Paths,
		pathByID:   make(map[string]*LearningPath, len(pf.Paths)),
		sections:   qf.Sections,
		questionBy: make(map[string]*Question),
	}
	sort.Slice(idx.paths, func(i, j int) bool {
		return idx.paths[i].ID < idx.paths[j].ID
	})
	for i := range idx.paths {
		idx.pathByID[idx.paths[i].ID] = &idx.paths[i]
	}
	for si := range idx.sections {
		for qi := range idx.sections[si].Questions {
			q := &idx.sections[si].Questions[qi]
			idx.questionBy[q.ID] = q
		}
	}
	return idx, nil
}

func decodeStrict(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(out)
}

// GetPath returns the learning path with the given id.
func GetPath(id string) (LearningPath, error) {
	p, ok := c.pathByID[id]
	if !ok {
		return LearningPath{}, fmt.Errorf("%w: %q", ErrPathNotFound, id)
	}
	return p.clone(), nil
}

// AllPaths returns every learning path ordered by id.
func AllPaths() []LearningPath {
	out := make([]LearningPath, len(c.paths))
	for i, p := range c.paths {
		out[i] = p.clone()
	}
	return out
}

// PathIDs returns the ids of all learning paths.
func PathIDs() []string {
	ids := make([]string, len(c.paths))
	for i, p := range c.paths {
		ids[i] = p.ID
	}
	return ids
}

// Sections returns the assessment section names in presentation order.
func Sections() []string {
	names := make([]string, len(c.sections))
	for i, s := range c.sections {
		names[i] = s.Name
	}
	return names
}

// Questions returns the questions of one section, or nil for an unknown section.
func Questions(section string) []Question {
	for _, s := range c.sections {
		if s.Name == section {
			out := make([]Question, len(s.Questions))
			for i, q := range s.Questions {
				out[i] = q.clone()
			}
			return out
		}
	}
	return nil
}

// AllQuestions returns every question in section order.
func AllQuestions() []Question {
	var out []Question
	for _, s := range c.sections {
		for _, q := range s.Questions {
			out = append(out, q.clone())
		}
	}
	return out
}

// GetQuestion returns a question by id.
func GetQuestion(id string) (Question, error) {
	q, ok := c.questionBy[id]
	if !ok {
		return Question{}, fmt.Errorf("%w: %q", ErrQuestionNotFound, id)
	}
	return q.clone(), nil
}

// QuestionIDs returns all question ids in section order.
func QuestionIDs() []string {
	var ids []string
	for _, s := range c.sections {
		for _, q := range s.Questions {
			ids = append(ids, q.ID)
		}
	}
	return slices.Clip(ids)
}
