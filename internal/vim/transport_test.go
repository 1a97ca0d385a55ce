package vim

import (
	"reflect"
	"testing"
	"time"
)

func TestClientArgs(t *testing.T) {
	got := clientArgs("gdb", []string{"--remote", "+42", "/src/a.c"})
	want := []string{"+q", "--servername", "gdb", "--remote", "+42", "/src/a.c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("clientArgs = %v, want %v", got, want)
	}
}

func TestNewExecTransportDefaults(t *testing.T) {
	tr := NewExecTransport()
	if tr.Binary() != DefaultBinary {
		t.Errorf("Binary = %q, want %q", tr.Binary(), DefaultBinary)
	}
	if tr.timeout != DefaultSendTimeout {
		t.Errorf("timeout = %v, want %v", tr.timeout, DefaultSendTimeout)
	}
}

func TestExecTransportOptions(t *testing.T) {
	tr := NewExecTransport(WithBinary("nvim"), WithTimeout(time.Second))
	if tr.Binary() != "nvim" {
		t.Errorf("Binary = %q, want nvim", tr.Binary())
	}
	if tr.timeout != time.Second {
		t.Errorf("timeout = %v, want 1s", tr.timeout)
	}
}

func TestExecTransportSetBinary(t *testing.T) {
	tr := NewExecTransport()
	tr.SetBinary("vim.gtk3")
	if tr.Binary() != "vim.gtk3" {
		t.Errorf("Binary = %q, want vim.gtk3", tr.Binary())
	}

	// Empty means "leave unchanged".
	tr.SetBinary("")
	if tr.Binary() != "vim.gtk3" {
		t.Errorf("Binary = %q after empty set, want vim.gtk3", tr.Binary())
	}
}
