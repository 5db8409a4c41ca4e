package repository

import (
	"context"

	"github.com/noah-isme/schoolboard-api/internal/models"
	"github.com/noah-isme/schoolboard-api/internal/store"
)

// nameIndex resolves display labels by id. It is rebuilt on every list call so
// joins only depend on what is stored at read time.
type nameIndex map[uint]string

func (n nameIndex) lookup(id uint) string {
	if name, ok := n[id]; ok {
		return name
	}
	return models.UnknownLabel
}

func studentNames(ctx context.Context, table store.Table[models.Student]) (nameIndex, error) {
	students, err := table.List(ctx)
	if err != nil {
		return nil, err
	}
	index := make(nameIndex, len(students))
	for _, student := range students {
		index[student.ID] = student.Name
	}
	return index, nil
}

func teacherNames(ctx context.Context, table store.Table[models.Teacher]) (nameIndex, error) {
	teachers, err := table.List(ctx)
	if err != nil {
		return nil, err
	}
	index := make(nameIndex, len(teachers))
	for _, teacher := range teachers {
		index[teacher.ID] = teacher.Name
	}
	return index, nil
}

func classSubjects(ctx context.Context, table store.Table[models.Class]) (nameIndex, error) {
	classes, err := table.List(ctx)
	if err != nil {
		return nil, err
	}
	index := make(nameIndex, len(classes))
	for _, class := range classes {
		index[class.ID] = class.Subject
	}
	return index, nil
}
