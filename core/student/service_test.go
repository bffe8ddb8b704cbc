package student_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/funil/core"
	"github.com/trezcool/funil/core/student"
	inmemdb "github.com/trezcool/funil/storage/database/inmem"
)

func TestService(t *testing.T) {
	svc := student.NewService(inmemdb.NewStudentRepository(inmemdb.Open()), core.NopMetrics())

	enrolled := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   student.Student
		want func(t *testing.T, s student.Student)
	}{
		{
			name: "enrolled today by default",
			in:   student.Student{Name: "Lucas", Course: "Piano"},
			want: func(t *testing.T, s student.Student) {
				assert.WithinDuration(t, time.Now().UTC(), s.EnrolledAt, time.Minute)
			},
		},
		{
			name: "given enrollment date",
			in:   student.Student{Name: "Ana", Course: "Violão", EnrolledAt: enrolled},
			want: func(t *testing.T, s student.Student) {
				assert.Equal(t, enrolled, s.EnrolledAt)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := svc.Create(tt.in)
			assert.NotEmpty(t, s.ID)
			tt.want(t, s)

			got, ok := svc.GetByID(s.ID)
			require.True(t, ok)
			assert.Equal(t, s, got)
		})
	}

	all := svc.QueryAll()
	require.Len(t, all, 2)
	s := all[0]
	s.IsActive = true
	updated, ok := svc.Update(s)
	require.True(t, ok)
	assert.True(t, updated.IsActive)
	assert.True(t, svc.Delete(s.ID))
	assert.Len(t, svc.QueryAll(), 1)
	_, ok = svc.Update(s)
	assert.False(t, ok)
}
