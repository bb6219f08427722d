package utils

import (
	"regexp"
	"testing"
)

func TestGenerateDocumentNumber(t *testing.T) {
	re := regexp.MustCompile(`^ORD_RM_\d+_\d{3}$`)
	for i := 0; i < 20; i++ {
		id := GenerateDocumentNumber("ORD_RM")
		if !re.MatchString(id) {
			t.Fatalf("unexpected id format: %s", id)
		}
	}
}
