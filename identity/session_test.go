package identity

import (
	"testing"

	"sabor/models"

	"github.com/stretchr/testify/assert"
)

func TestBrokerDeliversCurrentOnObserve(t *testing.T) {
	b := NewBroker()
	session := &models.Session{Kind: models.KindCustomer, CredentialID: "c1"}
	b.Publish(session)

	var got []*models.Session
	cancel := b.Observe(func(s *models.Session) { got = append(got, s) })
	defer cancel()

	assert.Len(t, got, 1)
	assert.Equal(t, session, got[0])
}

func TestBrokerPushesEveryTransition(t *testing.T) {
	b := NewBroker()

	var got []*models.Session
	cancel := b.Observe(func(s *models.Session) { got = append(got, s) })
	defer cancel()

	s1 := &models.Session{Kind: models.KindCustomer, CredentialID: "c1"}
	b.Publish(s1)
	b.Publish(nil) // sign-out is a transition too
	s2 := &models.Session{Kind: models.KindOwner, CredentialID: "o1"}
	b.Publish(s2)

	assert.Equal(t, []*models.Session{nil, s1, nil, s2}, got)
}

func TestBrokerUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBroker()

	count := 0
	cancel := b.Observe(func(*models.Session) { count++ })
	b.Publish(&models.Session{Kind: models.KindCustomer, CredentialID: "c1"})
	cancel()
	b.Publish(nil)

	assert.Equal(t, 2, count) // initial state + one publish, nothing after cancel
}

func TestBrokerMultipleObservers(t *testing.T) {
	b := NewBroker()

	a, c := 0, 0
	cancelA := b.Observe(func(*models.Session) { a++ })
	cancelC := b.Observe(func(*models.Session) { c++ })
	defer cancelA()
	defer cancelC()

	b.Publish(&models.Session{Kind: models.KindOwner, CredentialID: "o1"})
	assert.Equal(t, 2, a)
	assert.Equal(t, 2, c)
}
