package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wekeepgrowing/student-activity/internal/domain/entity"
)

type studentsFile struct {
	Students []studentEntry `yaml:"students"`
}

type studentEntry struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
}

func loadStudentsFromYAML(path string) ([]*entity.Student, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read students file: %w", err)
	}
	return parseStudents(data)
}

func parseStudents(data []byte) ([]*entity.Student, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var file studentsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("unmarshal students yaml: %w", err)
	}

	seen := make(map[string]int, len(file.Students))
	students := make([]*entity.Student, 0, len(file.Students))
	for i, entry := range file.Students {
		id := strings.TrimSpace(entry.ID)
		name := strings.TrimSpace(entry.Name)
		if id == "" {
			return nil, fmt.Errorf("students[%d]: id is required", i)
		}
		if name == "" {
			return nil, fmt.Errorf("students[%d]: name is required", i)
		}
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("students[%d]: id %q already used by students[%d]", i, id, prev)
		}
		seen[id] = i
		students = append(students, &entity.Student{ID: id, Name: name})
	}
	return students, nil
}
