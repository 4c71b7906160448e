package seed

import (
	"testing"

	"github.com/SscSPs/access_governance_app/internal/core/domain"
	"github.com/SscSPs/access_governance_app/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Embedded(t *testing.T) {
	f, err := Load()
	require.NoError(t, err)

	require.Len(t, f.Credentials, 2)
	assert.Equal(t, domain.RoleAdmin, f.Credentials[0].Role)
	assert.Nil(t, f.Credentials[0].EmployeeID)
	assert.True(t, utils.CheckPasswordHash("admin123", f.Credentials[0].PasswordHash))
	require.NotNil(t, f.Credentials[1].EmployeeID)
	assert.Equal(t, "1", *f.Credentials[1].EmployeeID)

	assert.Len(t, f.Applications, 13)
	assert.Len(t, f.Employees, 6)
	assert.Len(t, f.Grants, 21)
	assert.Len(t, f.AccessRequests, 3)
	assert.Len(t, f.AuditLog, 5)
	assert.Len(t, f.Subscriptions, 7)
}

func TestLoad_ResolvesDenormalizedFields(t *testing.T) {
	f, err := Load()
	require.NoError(t, err)

	req := f.AccessRequests[0]
	assert.Equal(t, "req1", req.ID)
	assert.Equal(t, "Michael Brown", req.UserName)
	assert.Equal(t, "michael.brown@example.com", req.UserEmail)
	assert.Equal(t, domain.AccessRequestPending, req.Status)

	// Requests keep the name they were filed with even when the catalog disagrees.
	assert.Equal(t, "MongoDB", f.AccessRequests[1].ApplicationName)

	g := f.Grants[0]
	assert.Equal(t, "1", g.EmployeeID)
	assert.Equal(t, "Slack", g.ApplicationName)
	assert.Equal(t, "Communication", g.ApplicationType)

	require.NotNil(t, f.Employees[0].Manager)
	assert.Equal(t, "Robert Johnson", *f.Employees[0].Manager)
}

func TestLoad_SubscriptionStats(t *testing.T) {
	f, err := Load()
	require.NoError(t, err)

	st := f.Subscriptions[0].Stat()
	assert.Equal(t, "2000", st.MonthlyCost.String())
	assert.Equal(t, int64(88), st.Utilization)
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"malformed":           "credentials: [",
		"unknown role":        "credentials:\n  - {id: x, role: root, password: p}\n",
		"unknown application": "employees:\n  - id: \"1\"\n    grants:\n      - {applicationId: nope}\n",
		"unknown employee":    "accessRequests:\n  - {id: r, userId: \"9\"}\n",
		"bad cost":            "subscriptions:\n  - {id: s, costPerSeat: abc}\n",
		"over allocated":      "subscriptions:\n  - {id: s, costPerSeat: \"1\", totalSeats: 1, activeSeats: 2}\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	f, err := LoadFile("")
	require.NoError(t, err)
	assert.NotEmpty(t, f.Employees)

	_, err = LoadFile("does-not-exist.yaml")
	assert.Error(t, err)
}
