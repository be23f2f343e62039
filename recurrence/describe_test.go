package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cyp0633/caresched/internal/locale"
)

func TestDescribe(t *testing.T) {
	must := mustRule(t)

	tests := []struct {
		rule   Rule
		pt, en string
	}{
		{Daily(), "Diária", "Daily"},
		{must(Weekly()), "Semanal", "Weekly"},
		{must(Weekly(time.Wednesday, time.Monday)), "Semanal: Seg, Qua", "Weekly: Mon, Wed"},
		{must(Monthly()), "Mensal", "Monthly"},
		{must(Monthly(15, 1)), "Mensal: dias 1, 15", "Monthly: days 1, 15"},
		{must(Custom(1)), "A cada 1 dia", "Every day"},
		{must(Custom(7)), "A cada 7 dias", "Every 7 days"},
		{Rule{kind: Kind(42)}, "Não configurada", "Not configured"},
	}

	for _, tt := range tests {
		t.Run(tt.rule.String(), func(t *testing.T) {
			assert.Equal(t, tt.pt, Describe(tt.rule, locale.PortugueseBrazil))
			assert.Equal(t, tt.en, Describe(tt.rule, locale.English))
		})
	}
}
