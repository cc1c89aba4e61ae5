package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskMark(t *testing.T) {
	assert.Equal(t, MarkPending, Task{ID: 1, Title: "Buy milk"}.Mark())
	assert.Equal(t, MarkDone, Task{ID: 1, Title: "Buy milk", Completed: true}.Mark())
}

func TestNormalizeTitle(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr error
	}{
		{name: "plain", in: "Buy milk", want: "Buy milk"},
		{name: "trimmed", in: "  Buy milk \t", want: "Buy milk"},
		{name: "inner spaces kept", in: "a  b", want: "a  b"},
		{name: "empty", in: "", wantErr: ErrInvalidTitle},
		{name: "whitespace only", in: " \t\n ", wantErr: ErrInvalidTitle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeTitle(tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateTasks(t *testing.T) {
	tests := []struct {
		name    string
		tasks   []Task
		wantErr bool
	}{
		{name: "nil is valid", tasks: nil},
		{name: "gaps are valid", tasks: []Task{{ID: 1, Title: "a"}, {ID: 5, Title: "b"}}},
		{name: "out of order is valid", tasks: []Task{{ID: 3, Title: "a"}, {ID: 1, Title: "b"}}},
		{name: "zero id", tasks: []Task{{ID: 0, Title: "a"}}, wantErr: true},
		{name: "negative id", tasks: []Task{{ID: -2, Title: "a"}}, wantErr: true},
		{name: "duplicate id", tasks: []Task{{ID: 1, Title: "a"}, {ID: 1, Title: "b"}}, wantErr: true},
		{name: "blank title", tasks: []Task{{ID: 1, Title: "  "}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTasks(tt.tasks)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformed)
				return
			}
			assert.NoError(t, err)
		})
	}
}
