package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTauxParticipation(t *testing.T) {
	assert.Equal(t, 75.0, tauxParticipation(75, 100))
	assert.Equal(t, 33.33, tauxParticipation(1, 3))
	assert.Equal(t, 66.67, tauxParticipation(2, 3))
	// dénominateur nul: 0.0, jamais de division par zéro
	assert.Equal(t, 0.0, tauxParticipation(10, 0))
	assert.Equal(t, 0.0, tauxParticipation(0, 0))
}

func TestTauxSuffragesValides(t *testing.T) {
	assert.Equal(t, 96.0, tauxSuffragesValides(48, 50))
	assert.Equal(t, 0.0, tauxSuffragesValides(10, 0))
}

func TestPourcentage(t *testing.T) {
	assert.Equal(t, 50.0, pourcentage(5, 10))
	assert.Equal(t, 16.67, pourcentage(1, 6))
	assert.Equal(t, 0.0, pourcentage(3, 0))
}

func TestDebutIntervalle(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2024, 3, 24, h, m, 0, 0, time.UTC)
	}
	// 15 minutes: 08:03 et 08:09 tombent dans 08:00, 08:22 dans 08:15
	assert.Equal(t, at(8, 0), debutIntervalle(at(8, 3), 15))
	assert.Equal(t, at(8, 0), debutIntervalle(at(8, 9), 15))
	assert.Equal(t, at(8, 15), debutIntervalle(at(8, 22), 15))
	assert.Equal(t, at(8, 45), debutIntervalle(at(8, 59), 15))

	// 30, 60 et 120 minutes
	assert.Equal(t, at(8, 30), debutIntervalle(at(8, 59), 30))
	assert.Equal(t, at(8, 0), debutIntervalle(at(8, 59), 60))
	// 120 minutes plafonne au plancher de l'heure courante
	assert.Equal(t, at(9, 0), debutIntervalle(at(9, 59), 120))
}

func TestValidIntervalle(t *testing.T) {
	for _, ok := range []int{15, 30, 60, 120} {
		assert.True(t, validIntervalle(ok), "interval %d", ok)
	}
	for _, ko := range []int{0, -15, 10, 45, 90, 240} {
		assert.False(t, validIntervalle(ko), "interval %d", ko)
	}
}
