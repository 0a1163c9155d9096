package utils_test

import (
	"testing"

	"github.com/doctoolkit/tocloader/internal/utils"
)

func TestUIDToPath(t *testing.T) {
	tests := []struct {
		uid      string
		base     string
		expected string
	}{
		{uid: "example.com.file", base: "/home/user", expected: "/home/user/example/com/file.md"},
		{uid: "user.profile.data", base: "/data", expected: "/data/user/profile/data.md"},
		{uid: "a.b.c", base: "/base", expected: "/base/a/b/c.md"},
		{uid: "singleword", base: "/files", expected: "/files/singleword.md"},
	}

	for _, tt := range tests {
		t.Run(tt.uid, func(t *testing.T) {
			got := utils.UIDToPath(tt.uid, tt.base)
			if got != tt.expected {
				t.Errorf("UIDToPath() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestComputeChecksum(t *testing.T) {
	a := utils.ComputeChecksum([]byte("hello"))
	b := utils.ComputeChecksum([]byte("hello"))
	c := utils.ComputeChecksum([]byte("world"))

	if string(a) != string(b) {
		t.Error("checksum must be deterministic for identical content")
	}
	if string(a) == string(c) {
		t.Error("checksum must differ for different content")
	}
}
