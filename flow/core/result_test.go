package core

import (
	"errors"
	"strings"
	"testing"
)

func TestErrPanic_Error(t *testing.T) {
	tests := []struct {
		name     string
		panic    ErrPanic
		contains []string
	}{
		{
			name:     "without stack",
			panic:    ErrPanic{Value: "test panic"},
			contains: []string{"panic: test panic"},
		},
		{
			name:     "with stack",
			panic:    ErrPanic{Value: "test panic", Stack: "some/function\n\tfile.go:42"},
			contains: []string{"panic: test panic", "some/function", "file.go:42"},
		},
		{
			name:     "integer value",
			panic:    ErrPanic{Value: 42},
			contains: []string{"panic: 42"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.panic.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(msg, substr) {
					t.Errorf("Error() = %q, want it to contain %q", msg, substr)
				}
			}
		})
	}
}

func TestNewPanicError(t *testing.T) {
	// Create a panic error from inside a function to test stack capture
	var err ErrPanic
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = NewPanicError(r)
			}
		}()
		panic("test panic value")
	}()

	// Check the value was captured
	if err.Value != "test panic value" {
		t.Errorf("Value = %v, want %q", err.Value, "test panic value")
	}

	// Check error message contains the panic value
	errMsg := err.Error()
	if !strings.Contains(errMsg, "panic: test panic value") {
		t.Errorf("Error() = %q, want it to contain 'panic: test panic value'", errMsg)
	}

	// Check that internal pushflow frames are NOT in the stack
	if strings.Contains(err.Stack, "github.com/lguimbarda/pushflow/flow/") {
		t.Errorf("Stack should not contain internal pushflow frames:\n%s", err.Stack)
	}
}

func TestCleanStack(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		shouldContain []string
		shouldExclude []string
	}{
		{
			name: "removes pushflow frames",
			input: `user/code/main.go
	/path/to/user/code/main.go:10
github.com/lguimbarda/pushflow/flow/core.Map
	/path/to/pushflow/flow/core/map.go:50
testing.tRunner
	/usr/local/go/src/testing/testing.go:1595`,
			shouldContain: []string{"user/code/main.go", "testing.tRunner"},
			shouldExclude: []string{"pushflow/flow/core.Map"},
		},
		{
			name:          "preserves user code",
			input:         "myapp/handler.Process\n\t/home/user/myapp/handler.go:25",
			shouldContain: []string{"myapp/handler.Process", "handler.go:25"},
			shouldExclude: []string{},
		},
		{
			name:          "handles empty input",
			input:         "",
			shouldContain: []string{},
			shouldExclude: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := cleanStack(tt.input)

			for _, s := range tt.shouldContain {
				if !strings.Contains(result, s) {
					t.Errorf("cleanStack() should contain %q, got:\n%s", s, result)
				}
			}

			for _, s := range tt.shouldExclude {
				if strings.Contains(result, s) {
					t.Errorf("cleanStack() should NOT contain %q, got:\n%s", s, result)
				}
			}
		})
	}
}

func TestResult_Ok(t *testing.T) {
	r := Ok(42)

	if !r.IsValue() {
		t.Error("Ok() should return IsValue() = true")
	}
	if r.IsError() {
		t.Error("Ok() should return IsError() = false")
	}
	if r.Value() != 42 {
		t.Errorf("Ok(42).Value() = %d, want 42", r.Value())
	}
	if r.Error() != nil {
		t.Errorf("Ok().Error() = %v, want nil", r.Error())
	}
}

func TestResult_Err(t *testing.T) {
	testErr := errors.New("test error")
	r := Err[int](testErr)

	if r.IsValue() {
		t.Error("Err() should return IsValue() = false")
	}
	if !r.IsError() {
		t.Error("Err() should return IsError() = true")
	}
	if r.Error() != testErr {
		t.Errorf("Err().Error() = %v, want %v", r.Error(), testErr)
	}
}

func TestResult_Unwrap(t *testing.T) {
	t.Run("value result", func(t *testing.T) {
		r := Ok(42)
		v, err := r.Unwrap()
		if v != 42 || err != nil {
			t.Errorf("Unwrap() = (%d, %v), want (42, nil)", v, err)
		}
	})

	t.Run("error result", func(t *testing.T) {
		testErr := errors.New("test")
		r := Err[int](testErr)
		v, err := r.Unwrap()
		if v != 0 || err != testErr {
			t.Errorf("Unwrap() = (%d, %v), want (0, %v)", v, err, testErr)
		}
	})
}

func TestResultStream_StopsOnFirstError(t *testing.T) {
	boom := errors.New("boom")
	s := fromSlice([]Result[int]{Ok(1), Err[int](boom), Ok(3)})

	var got []int
	var gotErr error
	done := s(func(r Result[int]) bool {
		if r.IsError() {
			gotErr = r.Error()
			return false
		}
		got = append(got, r.Value())
		return true
	})

	if done {
		t.Error("expected stream to report an early stop")
	}
	if !errors.Is(gotErr, boom) {
		t.Errorf("expected %v, got %v", boom, gotErr)
	}
	if len(got) != 1 || got[0] != 1 {
		t.Errorf("expected [1], got %v", got)
	}
}
