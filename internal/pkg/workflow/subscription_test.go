package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionTargetValidate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, SubscriptionTarget{PublicationID: 1}.Validate())
	assert.NoError(t, SubscriptionTarget{JournalistID: 2}.Validate())

	err := SubscriptionTarget{}.Validate()
	assert.True(t, IsValidation(err))

	err = SubscriptionTarget{PublicationID: 1, JournalistID: 2}.Validate()
	assert.True(t, IsValidation(err))
}

func TestCheckSubscribeDuplicate(t *testing.T) {
	t.Parallel()

	existing := []SubscriptionTarget{{PublicationID: 3}}

	err := CheckSubscribe(existing, SubscriptionTarget{PublicationID: 3}, nil)
	assert.True(t, IsConflict(err))
	assert.Equal(t, ConflictDuplicate, ConflictReason(err))

	assert.NoError(t, CheckSubscribe(existing, SubscriptionTarget{PublicationID: 4}, nil))
}

func TestCheckSubscribeExclusivity(t *testing.T) {
	t.Parallel()

	existing := []SubscriptionTarget{{PublicationID: 3}}
	target := SubscriptionTarget{JournalistID: 9}

	exclusive := &JournalistProfile{PublicationIDs: []uint{3}}
	err := CheckSubscribe(existing, target, exclusive)
	assert.True(t, IsConflict(err))
	assert.Equal(t, ConflictExclusivity, ConflictReason(err))

	// Writing for a second publication breaks exclusivity.
	multi := &JournalistProfile{PublicationIDs: []uint{3, 5}}
	assert.NoError(t, CheckSubscribe(existing, target, multi))

	// So does independent publishing.
	independent := &JournalistProfile{PublicationIDs: []uint{3}, IndependentArticles: 2}
	assert.NoError(t, CheckSubscribe(existing, target, independent))

	// Exclusive to a publication the reader does not follow is fine.
	other := &JournalistProfile{PublicationIDs: []uint{8}}
	assert.NoError(t, CheckSubscribe(existing, target, other))
}

func TestCheckSubscribeExclusivityNeedsProfile(t *testing.T) {
	t.Parallel()

	existing := []SubscriptionTarget{{PublicationID: 3}}
	assert.NoError(t, CheckSubscribe(existing, SubscriptionTarget{JournalistID: 9}, nil))
}

func TestJournalistProfileExclusiveTo(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint(3), JournalistProfile{PublicationIDs: []uint{3}}.ExclusiveTo())
	assert.Zero(t, JournalistProfile{}.ExclusiveTo())
	assert.Zero(t, JournalistProfile{PublicationIDs: []uint{3, 4}}.ExclusiveTo())
	assert.Zero(t, JournalistProfile{PublicationIDs: []uint{3}, IndependentArticles: 1}.ExclusiveTo())
}
