package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcibils/monitor-neuratek/internal/domain"
)

const sampleSLAFile = `
general:
  estimate_category: consulting
  categories:
    - name: incident
      style: "background-color:#fdd"
    - name: consulting
      style: "background-color:#ddf"
  sla_styles:
    ok: "background-color:#cfc"
    warning: "background-color:#ffc"
    breached: "background-color:#fcc"
  status_styles:
    "In Progress": "font-weight:bold"
  table_styles:
    header: "border:1px solid"
customers:
  - name: Acme
    style: "color:#225"
    service_mode: partial
    business_hours:
      start: "09:00"
      end: "18:00"
      week_mask: "Mon Tue Wed Thu Fri"
    custom_holidays:
      - "2025-12-24"
    sla:
      incident:
        initial_response: 4
        estimated_resolution: 24
  - name: Globex
    service_mode: none
`

func writeSLAFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sla.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSLAFile(t *testing.T) {
	file, err := LoadSLAFile(writeSLAFile(t, sampleSLAFile))
	require.NoError(t, err)

	assert.Equal(t, []string{"incident", "consulting"}, file.CategoryNames())
	assert.Equal(t, "consulting", file.General.EstimateCategory)

	customers := file.CustomerConfigs()
	require.Len(t, customers, 2)

	acme := customers["Acme"]
	require.NotNil(t, acme)
	assert.Equal(t, domain.ServiceModePartial, acme.ServiceMode)
	require.NotNil(t, acme.BusinessHours)
	assert.Equal(t, "09:00", acme.BusinessHours.Start)
	assert.Equal(t, "Mon Tue Wed Thu Fri", acme.BusinessHours.WeekMask)
	assert.Equal(t, []string{"2025-12-24"}, acme.CustomHolidays)
	assert.Equal(t, 4, acme.Thresholds["incident"][domain.SLAInitialResponse])
	assert.Equal(t, 24, acme.Thresholds["incident"][domain.SLAEstimatedResolution])

	globex := customers["Globex"]
	require.NotNil(t, globex)
	assert.Equal(t, domain.ServiceModeNone, globex.ServiceMode)
	assert.Nil(t, globex.BusinessHours)
	assert.Nil(t, globex.Thresholds)
}

func TestLoadSLAFileRejectsStructuralErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"missing file", ""},
		{"no categories", "general: {}\ncustomers: []\n"},
		{"unknown service mode", sampleSLAFile + `
  - name: Initech
    service_mode: sometimes
`},
		{"duplicate customer", sampleSLAFile + `
  - name: Acme
    service_mode: full
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "missing.yaml")
			if tt.content != "" {
				path = writeSLAFile(t, tt.content)
			}
			_, err := LoadSLAFile(path)
			assert.Error(t, err)
		})
	}
}
