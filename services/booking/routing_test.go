package booking

import (
	"testing"

	"auditorium/config"

	"github.com/stretchr/testify/assert"
)

func TestEquipmentRouterMatch(t *testing.T) {
	router := NewEquipmentRouter([]config.EquipmentRoute{
		{Name: "camera", Tags: []string{"Camera"}, Recipient: "camera@college.edu", Subject: "Camera"},
		{Name: "audio", Tags: []string{"mic", "speakers"}, Recipient: "audio@college.edu"},
		{Name: "lighting", Tags: []string{"lights"}, Recipient: ""},
		{Name: "empty", Tags: []string{" "}, Recipient: "nobody@college.edu"},
	})

	matched := router.Match([]string{"MIC", "speakers", "camera", "lights"})
	if assert.Len(t, matched, 2) {
		assert.Equal(t, "camera", matched[0].Name)
		assert.Equal(t, "audio", matched[1].Name)
		assert.Equal(t, "Equipment Required for Approved Event", matched[1].Subject)
	}

	assert.Empty(t, router.Match(nil))
	assert.Empty(t, router.Match([]string{"projector"}))
}
