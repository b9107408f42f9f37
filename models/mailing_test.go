package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailingStatus(t *testing.T) {
	assert.True(t, MailingStatusCreated.Valid())
	assert.True(t, MailingStatusStart.Valid())
	assert.True(t, MailingStatusFinish.Valid())
	assert.False(t, MailingStatus("paused").Valid())

	var s MailingStatus
	require.NoError(t, s.Scan("start"))
	assert.Equal(t, MailingStatusStart, s)

	require.NoError(t, s.Scan([]byte("finish")))
	assert.Equal(t, MailingStatusFinish, s)

	v, err := MailingStatusCreated.Value()
	require.NoError(t, err)
	assert.Equal(t, "created", v)

	_, err = MailingStatus("bogus").Value()
	require.Error(t, err)
}

func TestMailingPeriodicity(t *testing.T) {
	assert.True(t, MailingPeriodicityOnceADay.Valid())
	assert.True(t, MailingPeriodicityOnceAWeek.Valid())
	assert.True(t, MailingPeriodicityOnceAMonth.Valid())
	assert.False(t, MailingPeriodicity("hourly").Valid())

	var p MailingPeriodicity
	require.NoError(t, p.Scan("once_a_week"))
	assert.Equal(t, MailingPeriodicityOnceAWeek, p)

	_, err := MailingPeriodicity("hourly").Value()
	require.Error(t, err)
}

func TestDeliveryStatus(t *testing.T) {
	assert.True(t, DeliveryStatusStart.Valid())
	assert.True(t, DeliveryStatusFinish.Valid())
	assert.False(t, DeliveryStatus("created").Valid())
}

func TestMailingIsActive(t *testing.T) {
	m := Mailing{Status: MailingStatusStart}
	assert.True(t, m.IsActive())

	m.Status = MailingStatusFinish
	assert.False(t, m.IsActive())
}

func TestUserPermissionHelpers(t *testing.T) {
	u := User{}
	assert.False(t, u.InAnyGroup())
	assert.False(t, u.HasPerm("view_all_mailings"))

	u.Groups = []Group{{
		Name:        "managers",
		Permissions: []Permission{{Codename: "view_all_mailings"}},
	}}
	assert.True(t, u.InAnyGroup())
	assert.True(t, u.HasPerm("view_all_mailings"))
	assert.False(t, u.HasPerm("set_mailing_status"))
}

func TestClientFullName(t *testing.T) {
	last := "Petrov"
	c := Client{FirstName: "Ivan", LastName: &last}
	assert.Equal(t, "Ivan Petrov", c.FullName())

	c.LastName = nil
	assert.Equal(t, "Ivan", c.FullName())
}
