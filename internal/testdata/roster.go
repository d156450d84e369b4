// Package testdata provides worker fixtures and a stand-in backend handler
// for tests.
package testdata

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"

	"github.com/trouvetonpro/dalil/internal/directory"
)

func ptr(s string) *string { return &s }

// Workers is a small fixed roster covering three categories and mixed
// scripts.
func Workers() []directory.Worker {
	return []directory.Worker{
		{ID: "1", FirstName: "يوسف", LastName: "بناني", Category: "سباك", City: "فاس",
			Rating: directory.Rating{Value: 4.5, Valid: true}, Phone: "0611111111", WhatsApp: ptr("212611111111"),
			Bio: "إصلاح التسربات وتركيب الأدوات الصحية", Image: "http://172.16.172.70:8000/static/images/personne.jpg"},
		{ID: "2", FirstName: "أمين", LastName: "العلوي", Category: "كهربائي", City: "الرباط",
			Rating: directory.Rating{Value: 4.0, Valid: true}, Phone: "0622222222",
			Bio: "تمديدات كهربائية منزلية", Image: "http://172.16.172.70:8000/static/images/personne.jpg"},
		{ID: "3", FirstName: "سعيد", LastName: "تازي", Category: "سباك", City: "الدار البيضاء",
			Rating: directory.Rating{Value: 3.5, Valid: true}, Phone: "0633333333", WhatsApp: ptr("212633333333"),
			Image: "http://172.16.172.70:8000/static/images/personne.jpg"},
		{ID: "4", FirstName: "كريم", LastName: "إدريسي", Category: "نجار", City: "طنجة",
			Phone: "0644444444", Bio: "نجارة تقليدية", Image: "http://172.16.172.70:8000/static/images/personne.jpg"},
	}
}

var (
	firstNames = []string{"يوسف", "أمين", "سعيد", "كريم", "حسن", "مريم", "فاطمة", "نادية"}
	lastNames  = []string{"بناني", "العلوي", "تازي", "إدريسي", "الفاسي", "برادة", "الشرقاوي"}
	categories = []string{"سباك", "كهربائي", "نجار", "دهان", "ميكانيكي"}
	cities     = []string{"فاس", "الرباط", "الدار البيضاء", "طنجة", "مراكش", "أكادير"}
)

// Generate builds n pseudo-random workers; the same seed gives the same roster.
func Generate(n int, seed int64) []directory.Worker {
	r := rand.New(rand.NewSource(seed))
	out := make([]directory.Worker, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, directory.Worker{
			ID:        fmt.Sprintf("G%d", i),
			FirstName: firstNames[r.Intn(len(firstNames))],
			LastName:  lastNames[r.Intn(len(lastNames))],
			Category:  categories[r.Intn(len(categories))],
			City:      cities[r.Intn(len(cities))],
			Rating:    directory.Rating{Value: float64(r.Intn(50)) / 10, Valid: true},
			Phone:     fmt.Sprintf("06%08d", r.Intn(100000000)),
		})
	}
	return out
}

// Handler serves GET /api/workers/ and GET /api/workers/{id}/ from workers.
func Handler(workers []directory.Worker) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/workers/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/workers/"), "/")
		if id == "" {
			writeJSON(w, workers)
			return
		}
		for _, wk := range workers {
			if wk.ID == id {
				writeJSON(w, wk)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Not found."}`))
	})
	return mux
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
