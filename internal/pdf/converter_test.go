package pdf

import "testing"

func TestIsPDF(t *testing.T) {
	tests := []struct {
		data []byte
		want bool
	}{
		{[]byte("%PDF-1.7\n..."), true},
		{[]byte("PK\x03\x04"), false},
		{nil, false},
	}
	for _, tt := range tests {
		if got := IsPDF(tt.data); got != tt.want {
			t.Errorf("IsPDF(%q) = %v, want %v", tt.data, got, tt.want)
		}
	}
}

func TestFirstPagePreviewRejectsNonPDF(t *testing.T) {
	if _, err := FirstPagePreview([]byte("hello")); err == nil {
		t.Fatalf("FirstPagePreview(non-pdf) error = nil")
	}
}
