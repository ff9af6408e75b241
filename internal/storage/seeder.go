package storage

import (
	"math/rand/v2"
	"time"

	"emotrack/internal/models"
	"emotrack/internal/providers"
	"emotrack/internal/structures"
)

const (
	morningChance        = 0.9
	eveningChance        = 0.85
	morningCommentChance = 0.3
	eveningCommentChance = 0.2
	morningHour          = 9
	eveningHour          = 17
)

var seedComments = map[models.Emotion][]string{
	models.EmotionHappy:    {"Très bonne journée !", "Projet terminé avec succès", "Excellente ambiance d'équipe"},
	models.EmotionSad:      {"Journée difficile", "Problèmes personnels", "Charge de travail importante"},
	models.EmotionNeutral:  {"Journée normale", "Rien de particulier", "Routine habituelle"},
	models.EmotionStressed: {"Délais serrés", "Beaucoup de pression", "Trop de réunions"},
	models.EmotionExcited:  {"Nouveau projet passionnant !", "Bonne nouvelle !", "Formation intéressante"},
	models.EmotionTired:    {"Manque de sommeil", "Journée chargée", "Besoin de repos"},
}

// Seeder generates a plausible history for every employee of the directory.
// It only runs when no store file exists yet.
type Seeder struct {
	directory providers.DirectoryInterface
	days      int
	rnd       *rand.Rand
}

func NewSeeder(conf *structures.Config, directory providers.DirectoryInterface) *Seeder {
	seed := uint64(time.Now().UnixNano())
	return &Seeder{
		directory: directory,
		days:      conf.Persistence.SeedDays,
		rnd:       rand.New(rand.NewPCG(seed, seed>>32)),
	}
}

// Generate covers the last s.days days up to and including now.
func (s *Seeder) Generate(now time.Time) []models.EmotionRecord {
	records := make([]models.EmotionRecord, 0)
	for _, subject := range s.directory.Employees() {
		for i := s.days - 1; i >= 0; i-- {
			day := now.AddDate(0, 0, -i)
			date := models.FormatDate(day)
			midnight := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())

			if s.rnd.Float64() < morningChance {
				records = append(records, s.record(subject.ID, date, models.PeriodMorning, midnight.Add(morningHour*time.Hour), morningCommentChance))
			}
			if s.rnd.Float64() < eveningChance {
				records = append(records, s.record(subject.ID, date, models.PeriodEvening, midnight.Add(eveningHour*time.Hour), eveningCommentChance))
			}
		}
	}
	return records
}

func (s *Seeder) record(subjectID, date string, period models.Period, at time.Time, commentChance float64) models.EmotionRecord {
	emotion := models.Emotions[s.rnd.IntN(len(models.Emotions))]
	r := models.EmotionRecord{
		ID:         models.RecordID(subjectID, date, period),
		SubjectID:  subjectID,
		Date:       date,
		Period:     period,
		Emotion:    emotion,
		RecordedAt: at,
	}
	if s.rnd.Float64() < commentChance {
		pool := seedComments[emotion]
		r.Comment = pool[s.rnd.IntN(len(pool))]
	}
	return r
}
