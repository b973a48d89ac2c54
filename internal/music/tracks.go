// Package music is the catalogue of royalty-free uplifting tracks.
package music

import (
	"math/rand"
	"slices"
	"strings"

	"github.com/julianstephens/mindfulpath/internal/models"
)

var tracks = []models.Track{
	{
		ID:         "1",
		Name:       "Peaceful Meditation",
		ArtistName: "Free Music Archive",
		Image:      "https://images.unsplash.com/photo-1500462918059-b1a0cb512f1d?auto=format&fit=crop&w=300&q=80",
		AudioURL:   "https://files.freemusicarchive.org/storage-freemusicarchive-org/music/ccCommunity/Chad_Crouch/Arps/Chad_Crouch_-_Shipping_Lanes.mp3",
		Duration:   149,
		Moods:      []string{"peaceful", "uplifting"},
	},
	{
		ID:         "2",
		Name:       "Mindful Journey",
		ArtistName: "Chad Crouch",
		Image:      "https://images.unsplash.com/photo-1493225457124-a3eb161ffa5f?auto=format&fit=crop&w=300&q=80",
		AudioURL:   "https://files.freemusicarchive.org/storage-freemusicarchive-org/music/ccCommunity/Chad_Crouch/Arps/Chad_Crouch_-_Algorithms.mp3",
		Duration:   180,
		Moods:      []string{"energetic", "inspiring"},
	},
	{
		ID:         "3",
		Name:       "Gentle Flow",
		ArtistName: "Kevin MacLeod",
		Image:      "https://images.unsplash.com/photo-1507838153414-b4b713384a76?auto=format&fit=crop&w=300&q=80",
		AudioURL:   "https://incompetech.com/music/royalty-free/mp3-royaltyfree/Healing.mp3",
		Duration:   179,
		Moods:      []string{"peaceful", "meditative"},
	},
	{
		ID:         "4",
		Name:       "Moonrise",
		ArtistName: "Chad Crouch",
		Image:      "https://images.unsplash.com/photo-1470116892389-0de5d9770b2c?auto=format&fit=crop&w=300&q=80",
		AudioURL:   "https://files.freemusicarchive.org/storage-freemusicarchive-org/music/ccCommunity/Chad_Crouch/Arps/Chad_Crouch_-_Moonrise.mp3",
		Duration:   161,
		Moods:      []string{"uplifting", "peaceful"},
	},
}

func copyTrack(t models.Track) models.Track {
	t.Moods = slices.Clone(t.Moods)
	return t
}

func All() []models.Track {
	out := make([]models.Track, len(tracks))
	for i, t := range tracks {
		out[i] = copyTrack(t)
	}
	return out
}

// ByMood returns tracks tagged with mood (case-insensitive).
func ByMood(mood string) []models.Track {
	out := []models.Track{}
	for _, t := range tracks {
		if slices.ContainsFunc(t.Moods, func(m string) bool { return strings.EqualFold(m, strings.TrimSpace(mood)) }) {
			out = append(out, copyTrack(t))
		}
	}
	return out
}

func Get(id string) (models.Track, bool) {
	for _, t := range tracks {
		if t.ID == id {
			return copyTrack(t), true
		}
	}
	return models.Track{}, false
}

// Moods lists every mood tag in the catalogue, sorted.
func Moods() []string {
	var out []string
	for _, t := range tracks {
		for _, m := range t.Moods {
			if !slices.Contains(out, m) {
				out = append(out, m)
			}
		}
	}
	slices.Sort(out)
	return out
}

// Shuffle returns the catalogue in random order.
func Shuffle(rng *rand.Rand) []models.Track {
	out := All()
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}
