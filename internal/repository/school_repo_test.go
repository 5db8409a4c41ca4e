package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/noah-isme/schoolboard-api/internal/models"
	"github.com/noah-isme/schoolboard-api/internal/store"
)

type repositories struct {
	students    StudentRepository
	teachers    TeacherRepository
	classes     ClassRepository
	attendance  AttendanceRepository
	examResults ExamResultRepository
	fees        FeeRepository
}

func newRepositories(s store.Store) repositories {
	validate := validator.New(validator.WithRequiredStructEnabled())
	return repositories{
		students:    NewStudentRepository(s, validate),
		teachers:    NewTeacherRepository(s, validate),
		classes:     NewClassRepository(s, validate),
		attendance:  NewAttendanceRepository(s, validate),
		examResults: NewExamResultRepository(s, validate),
		fees:        NewFeeRepository(s, validate),
	}
}

func eachStore(t *testing.T, fn func(t *testing.T, repos repositories)) {
	t.Helper()
	t.Run("memory", func(t *testing.T) {
		fn(t, newRepositories(store.NewMemory()))
	})
	t.Run("sqlite", func(t *testing.T) {
		fn(t, newRepositories(setupStore(t)))
	})
}

func setupStore(t *testing.T) store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)

	s := store.NewGorm(db)
	require.NoError(t, s.Reset(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func ada() models.Student {
	return models.Student{Name: "Ada", Email: "ada@school.com", Grade: models.Grade9, Section: models.SectionB, AdmissionDate: "2024-09-01"}
}

func TestCreateThenGetReturnsInput(t *testing.T) {
	eachStore(t, func(t *testing.T, repos repositories) {
		ctx := context.Background()

		input := ada()
		input.ID = 42
		id, err := repos.students.Create(ctx, input)
		require.NoError(t, err)
		require.Equal(t, uint(1), id, "caller supplied ids are ignored")

		stored, found, err := repos.students.GetByID(ctx, id)
		require.NoError(t, err)
		require.True(t, found)
		expected := ada()
		expected.ID = id
		require.Equal(t, expected, stored)

		teacher := models.Teacher{Name: "John Smith", Email: "john@school.com", Specialization: "Mathematics", JoinDate: "2023-01-15"}
		teacherID, err := repos.teachers.Create(ctx, teacher)
		require.NoError(t, err)
		storedTeacher, found, err := repos.teachers.GetByID(ctx, teacherID)
		require.NoError(t, err)
		require.True(t, found)
		teacher.ID = teacherID
		require.Equal(t, teacher, storedTeacher)

		class := models.Class{ID: 9, Grade: models.Grade11, Section: models.SectionA, Subject: "Science", TeacherID: teacherID}
		classID, err := repos.classes.Create(ctx, class)
		require.NoError(t, err)
		storedClass, found, err := repos.classes.GetByID(ctx, classID)
		require.NoError(t, err)
		require.True(t, found)
		class.ID = classID
		require.Equal(t, class, storedClass)

		attendance := models.Attendance{ID: 9, StudentID: id, ClassID: classID, Date: "2024-10-03", Status: models.AttendanceLate}
		attendanceID, err := repos.attendance.Create(ctx, attendance)
		require.NoError(t, err)
		storedAttendance, found, err := repos.attendance.GetByID(ctx, attendanceID)
		require.NoError(t, err)
		require.True(t, found)
		attendance.ID = attendanceID
		require.Equal(t, attendance, storedAttendance)

		result := models.ExamResult{ID: 9, StudentID: id, ClassID: classID, ExamDate: "2024-10-10", Marks: 0}
		resultID, err := repos.examResults.Create(ctx, result)
		require.NoError(t, err)
		storedResult, found, err := repos.examResults.GetByID(ctx, resultID)
		require.NoError(t, err)
		require.True(t, found)
		result.ID = resultID
		require.Equal(t, result, storedResult)

		fee := models.Fee{ID: 9, StudentID: 404, Amount: 0, DueDate: "2024-11-30", Status: models.FeeOverdue}
		feeID, err := repos.fees.Create(ctx, fee)
		require.NoError(t, err)
		storedFee, found, err := repos.fees.GetByID(ctx, feeID)
		require.NoError(t, err)
		require.True(t, found)
		fee.ID = feeID
		require.Equal(t, fee, storedFee)

		_, found, err = repos.students.GetByID(ctx, 999)
		require.NoError(t, err)
		require.False(t, found)
	})
}

func TestFeeListCarriesStudentName(t *testing.T) {
	eachStore(t, func(t *testing.T, repos repositories) {
		ctx := context.Background()

		studentID, err := repos.students.Create(ctx, ada())
		require.NoError(t, err)
		require.Equal(t, uint(1), studentID)

		feeID, err := repos.fees.Create(ctx, models.Fee{StudentID: studentID, Amount: 5000, DueDate: "2025-01-01", Status: models.FeePending})
		require.NoError(t, err)
		require.Equal(t, uint(1), feeID)

		fees, err := repos.fees.List(ctx)
		require.NoError(t, err)
		require.Len(t, fees, 1)
		require.Equal(t, "Ada", fees[0].StudentName)
		require.Equal(t, models.FeePending, fees[0].Status)
		require.Equal(t, int64(5000), fees[0].Amount)
	})
}

func TestUpdateMissingStudentReturnsFalse(t *testing.T) {
	eachStore(t, func(t *testing.T, repos repositories) {
		name := "X"
		updated, err := repos.students.Update(context.Background(), 999, models.StudentPatch{Name: &name})
		require.NoError(t, err)
		require.False(t, updated)
	})
}

func TestUpdateLeavesOtherFieldsUntouched(t *testing.T) {
	eachStore(t, func(t *testing.T, repos repositories) {
		ctx := context.Background()

		id, err := repos.examResults.Create(ctx, models.ExamResult{StudentID: 1, ClassID: 1, ExamDate: "2025-02-10", Marks: 70})
		require.NoError(t, err)

		marks := 95
		updated, err := repos.examResults.Update(ctx, id, models.ExamResultPatch{Marks: &marks})
		require.NoError(t, err)
		require.True(t, updated)

		results, err := repos.examResults.List(ctx)
		require.NoError(t, err)
		require.Len(t, results, 1)
		require.Equal(t, models.ExamResult{ID: id, StudentID: 1, ClassID: 1, ExamDate: "2025-02-10", Marks: 95}, results[0].ExamResult)
	})
}

func TestDeleteThenGetIsAbsent(t *testing.T) {
	eachStore(t, func(t *testing.T, repos repositories) {
		ctx := context.Background()

		id, err := repos.students.Create(ctx, ada())
		require.NoError(t, err)

		deleted, err := repos.students.Delete(ctx, id)
		require.NoError(t, err)
		require.True(t, deleted)

		_, found, err := repos.students.GetByID(ctx, id)
		require.NoError(t, err)
		require.False(t, found)

		deleted, err = repos.students.Delete(ctx, id)
		require.NoError(t, err)
		require.False(t, deleted)
	})
}

func TestClassWithMissingTeacherIsUnknown(t *testing.T) {
	eachStore(t, func(t *testing.T, repos repositories) {
		ctx := context.Background()

		teacherID, err := repos.teachers.Create(ctx, models.Teacher{Name: "Sarah Johnson", Email: "sarah@school.com", Specialization: "English", JoinDate: "2023-02-20"})
		require.NoError(t, err)

		_, err = repos.classes.Create(ctx, models.Class{Grade: models.Grade10, Section: models.SectionA, Subject: "English", TeacherID: teacherID})
		require.NoError(t, err)
		_, err = repos.classes.Create(ctx, models.Class{Grade: models.Grade11, Section: models.SectionC, Subject: "Science", TeacherID: 77})
		require.NoError(t, err)

		classes, err := repos.classes.List(ctx)
		require.NoError(t, err)
		require.Len(t, classes, 2)
		require.Equal(t, "Sarah Johnson", classes[0].TeacherName)
		require.Equal(t, models.UnknownLabel, classes[1].TeacherName)
	})
}

func TestDeletingStudentLeavesDependentRows(t *testing.T) {
	eachStore(t, func(t *testing.T, repos repositories) {
		ctx := context.Background()

		studentID, err := repos.students.Create(ctx, ada())
		require.NoError(t, err)
		classID, err := repos.classes.Create(ctx, models.Class{Grade: models.Grade9, Section: models.SectionB, Subject: "Mathematics", TeacherID: 1})
		require.NoError(t, err)
		_, err = repos.examResults.Create(ctx, models.ExamResult{StudentID: studentID, ClassID: classID, ExamDate: "2025-02-10", Marks: 88})
		require.NoError(t, err)
		_, err = repos.attendance.Create(ctx, models.Attendance{StudentID: studentID, ClassID: classID, Date: "2025-03-01", Status: models.AttendancePresent})
		require.NoError(t, err)

		deleted, err := repos.students.Delete(ctx, studentID)
		require.NoError(t, err)
		require.True(t, deleted)

		results, err := repos.examResults.List(ctx)
		require.NoError(t, err)
		require.Len(t, results, 1)
		require.Equal(t, models.UnknownLabel, results[0].StudentName)
		require.Equal(t, "Mathematics", results[0].Subject)

		attendance, err := repos.attendance.List(ctx)
		require.NoError(t, err)
		require.Len(t, attendance, 1)
		require.Equal(t, models.UnknownLabel, attendance[0].StudentName)
	})
}

func TestWritesRejectValuesOutsideEnumerations(t *testing.T) {
	eachStore(t, func(t *testing.T, repos repositories) {
		ctx := context.Background()
		var validationErrors validator.ValidationErrors

		bad := ada()
		bad.Grade = "13th"
		_, err := repos.students.Create(ctx, bad)
		require.True(t, errors.As(err, &validationErrors))

		bad = ada()
		bad.AdmissionDate = "01/09/2024"
		_, err = repos.students.Create(ctx, bad)
		require.True(t, errors.As(err, &validationErrors))

		_, err = repos.examResults.Create(ctx, models.ExamResult{StudentID: 1, ClassID: 1, ExamDate: "2025-02-10", Marks: 101})
		require.True(t, errors.As(err, &validationErrors))

		_, err = repos.fees.Create(ctx, models.Fee{StudentID: 1, Amount: 10, DueDate: "2025-01-01", Status: "LOST"})
		require.True(t, errors.As(err, &validationErrors))

		id, err := repos.attendance.Create(ctx, models.Attendance{StudentID: 1, ClassID: 1, Date: "2025-03-01", Status: models.AttendanceLate})
		require.NoError(t, err)

		status := models.AttendanceStatus("EXCUSED")
		_, err = repos.attendance.Update(ctx, id, models.AttendancePatch{Status: &status})
		require.True(t, errors.As(err, &validationErrors))

		negative := -1
		_, err = repos.examResults.Update(ctx, id, models.ExamResultPatch{Marks: &negative})
		require.True(t, errors.As(err, &validationErrors))

		stored, found, err := repos.attendance.GetByID(ctx, id)
		require.NoError(t, err)
		require.True(t, found)
		require.Equal(t, models.AttendanceLate, stored.Status, "rejected patch must not reach storage")

		students, err := repos.students.List(ctx)
		require.NoError(t, err)
		require.Empty(t, students)
	})
}

func TestZeroMarksAreAccepted(t *testing.T) {
	eachStore(t, func(t *testing.T, repos repositories) {
		ctx := context.Background()

		id, err := repos.examResults.Create(ctx, models.ExamResult{StudentID: 1, ClassID: 1, ExamDate: "2025-02-10", Marks: 0})
		require.NoError(t, err)

		zero := 0
		updated, err := repos.examResults.Update(ctx, id, models.ExamResultPatch{Marks: &zero})
		require.NoError(t, err)
		require.True(t, updated)
	})
}

func TestBulkUpdateStatusAffectsOnlyThatDate(t *testing.T) {
	eachStore(t, func(t *testing.T, repos repositories) {
		ctx := context.Background()

		for _, row := range []models.Attendance{
			{StudentID: 1, ClassID: 1, Date: "2025-03-01", Status: models.AttendanceAbsent},
			{StudentID: 2, ClassID: 1, Date: "2025-03-01", Status: models.AttendanceLate},
			{StudentID: 3, ClassID: 1, Date: "2025-03-01", Status: models.AttendancePresent},
			{StudentID: 1, ClassID: 1, Date: "2025-03-02", Status: models.AttendanceAbsent},
		} {
			_, err := repos.attendance.Create(ctx, row)
			require.NoError(t, err)
		}

		affected, err := repos.attendance.BulkUpdateStatus(ctx, BulkAttendanceUpdate{Date: "2025-03-01", Status: models.AttendancePresent})
		require.NoError(t, err)
		require.Equal(t, int64(3), affected)

		all, err := repos.attendance.List(ctx)
		require.NoError(t, err)
		for _, row := range all {
			if row.Date == "2025-03-01" {
				require.Equal(t, models.AttendancePresent, row.Status)
			} else {
				require.Equal(t, models.AttendanceAbsent, row.Status)
			}
		}

		affected, err = repos.attendance.BulkUpdateStatus(ctx, BulkAttendanceUpdate{Date: "2030-01-01", Status: models.AttendanceAbsent})
		require.NoError(t, err)
		require.Zero(t, affected)

		var validationErrors validator.ValidationErrors
		_, err = repos.attendance.BulkUpdateStatus(ctx, BulkAttendanceUpdate{Date: "2025-03-01", Status: "HOLIDAY"})
		require.True(t, errors.As(err, &validationErrors))
	})
}

func TestMarkAttendanceUpdatesOrCreates(t *testing.T) {
	eachStore(t, func(t *testing.T, repos repositories) {
		ctx := context.Background()

		studentID, err := repos.students.Create(ctx, ada())
		require.NoError(t, err)

		id, created, err := repos.attendance.Mark(ctx, AttendanceMark{StudentID: studentID, ClassID: 1, Date: "2025-03-01", Status: models.AttendanceLate})
		require.NoError(t, err)
		require.True(t, created)

		again, created, err := repos.attendance.Mark(ctx, AttendanceMark{StudentID: studentID, ClassID: 1, Date: "2025-03-01", Status: models.AttendancePresent})
		require.NoError(t, err)
		require.False(t, created)
		require.Equal(t, id, again)

		day, err := repos.attendance.ListByDate(ctx, "2025-03-01")
		require.NoError(t, err)
		require.Len(t, day, 1)
		require.Equal(t, models.AttendancePresent, day[0].Status)
		require.Equal(t, "Ada", day[0].StudentName)

		other, err := repos.attendance.ListByDate(ctx, "2025-03-02")
		require.NoError(t, err)
		require.Empty(t, other)
	})
}

func TestListIsIdempotent(t *testing.T) {
	eachStore(t, func(t *testing.T, repos repositories) {
		ctx := context.Background()

		_, err := repos.students.Create(ctx, ada())
		require.NoError(t, err)
		_, err = repos.fees.Create(ctx, models.Fee{StudentID: 1, Amount: 5000, DueDate: "2025-01-01", Status: models.FeePaid})
		require.NoError(t, err)

		first, err := repos.fees.List(ctx)
		require.NoError(t, err)
		second, err := repos.fees.List(ctx)
		require.NoError(t, err)
		require.Equal(t, first, second)
	})
}
