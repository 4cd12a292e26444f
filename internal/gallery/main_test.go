package gallery

import (
	"testing"

	"go.uber.org/goleak"
)

// Каждая загрузка должна завершать свою горутину.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
