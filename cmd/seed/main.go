// seed loads deterministic sample data for local pilots: 50 citizen requests,
// 30 infrastructure assets, 40 health surveillance records, and one analyst
// account (analyst@sevadesk.local / pilot-password, not an admin).
// Usage: from project root, run: go run ./cmd/seed
// Requires .env (or env) with DB_*. Safe to re-run: existing rows are skipped.
package main

import (
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"time"

	"sevadesk/config"
	"sevadesk/schema"
	"sevadesk/service"
	"sevadesk/utils"

	_ "github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
)

var complaintTypes = []string{
	"Water Supply", "Road Repair", "Healthcare", "Electricity",
	"Garbage Collection", "Street Lights", "Drainage", "Public Transport",
}

var cities = []string{
	"Mumbai", "Pune", "Nagpur", "Nashik", "Aurangabad", "Thane", "Solapur", "Kolhapur",
}

var severities = []string{"Critical", "High", "Medium", "Low"}
var statuses = []string{"Open", "In Progress", "Resolved"}

var descriptions = map[string][]string{
	"Water Supply": {
		"No water supply for 5 days affecting 500 families in our ward. This is a critical situation requiring immediate attention.",
		"Severe water contamination reported in our area. Multiple citizens have fallen sick and need urgent intervention.",
		"Major pipeline burst causing complete water shortage in entire ward. Emergency repair needed immediately.",
	},
	"Road Repair": {
		"Multiple dangerous potholes on main road causing daily accidents. Several vehicles damaged and citizens injured.",
		"Road completely damaged after recent monsoon. Urgent repair needed as situation is worsening daily.",
		"Bridge showing major structural cracks. Serious safety concern for thousands of daily commuters.",
	},
	"Healthcare": {
		"Critical medicine shortage in government hospital affecting patient treatment. Lives at risk.",
		"Ambulance service frequently delayed. Emergency response time is very poor affecting critical patients.",
		"Hospital equipment not functioning. Patient care severely compromised and needs immediate attention.",
	},
	"Electricity": {
		"Frequent power cuts lasting 8-10 hours daily. Businesses and daily life completely disrupted.",
		"Transformer failure affecting more than 1000 households. No electricity for past 3 days.",
		"Multiple electricity poles damaged and leaning dangerously. Major safety hazard in residential area.",
	},
	"Garbage Collection": {
		"Garbage not collected for past 10 days. Creating major health hazard and unbearable situation.",
		"Overflowing garbage bins attracting rats and stray animals. Diseases spreading in the area.",
		"No proper garbage disposal system in our area. Residents forced to dump waste on roadsides.",
	},
	"Street Lights": {
		"All street lights in our area not working for 3 weeks. Major safety concern for residents.",
		"Poor visibility at night causing accidents and increasing crime. Women feel unsafe after dark.",
		"Street lights damaged in storm and need immediate replacement for public safety.",
	},
	"Drainage": {
		"Completely blocked drainage system causing severe water logging during rains.",
		"Sewage overflow on main road creating unbearable situation. Health hazard for all residents.",
		"Entire drainage system has collapsed. Urgent reconstruction needed before monsoon season.",
	},
	"Public Transport": {
		"Severely insufficient bus services causing extreme overcrowding. Citizens facing daily hardship.",
		"Bus schedule completely irregular. Long waiting times and unpredictable service.",
		"No bus connectivity to remote areas. Residents forced to walk long distances daily.",
	},
}

var citizenNames = []string{
	"Rajesh Patil", "Sneha Kulkarni", "Amit Deshmukh", "Priya Joshi",
	"Vijay Sharma", "Meera Patel", "Suresh Kumar", "Anita Reddy",
	"Rakesh Gupta", "Deepa Shah", "Anil Rao", "Kavita Singh",
	"Manish Agarwal", "Pooja Verma", "Sanjay Mishra", "Ritu Malhotra",
	"Kiran Naik", "Madhuri Desai", "Prakash Jadhav", "Sunita Wagh",
	"Ramesh Pawar", "Anjali Bhosale", "Ganesh Shinde", "Sarika Kadam",
}

var assetTypes = []string{
	"Water Pipeline", "Road Network", "Hospital", "School Building",
	"Power Substation", "Sewage Treatment Plant", "Bridge", "Community Center",
	"Government Office", "Public Library", "Bus Depot", "Water Tank",
}

var assetLocations = []string{
	"Shivaji Nagar", "Andheri West", "Civil Lines", "Kothrud", "Vashi",
	"MG Road", "Station Road", "Market Area", "Gandhi Chowk", "Ring Road",
	"Tilak Road", "Nehru Nagar", "Ambedkar Square",
}

// risk bands per reported condition
var conditionRisk = map[string][2]float64{
	"Excellent": {1.0, 2.5},
	"Good":      {2.5, 4.5},
	"Fair":      {4.5, 6.5},
	"Poor":      {6.5, 8.5},
	"Critical":  {8.5, 10.0},
}

var assetConditions = []string{"Excellent", "Good", "Fair", "Poor", "Critical"}

var diseases = []string{
	"Dengue", "Malaria", "Seasonal Flu", "Waterborne Diseases",
	"COVID-19", "Typhoid", "Tuberculosis", "Food Poisoning",
	"Viral Fever", "Gastroenteritis", "Hepatitis", "Chickenpox",
}

var healthTrends = []string{"Increasing", "Decreasing", "Stable"}

var alertActions = map[string]string{
	"Green":  "Routine monitoring and surveillance ongoing",
	"Yellow": "Enhanced surveillance measures activated",
	"Orange": "Active intervention and control measures in place",
	"Red":    "Emergency response protocol activated. Intensive intervention.",
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env not found")
	}
	cfg := config.LoadConfig()

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4&loc=UTC",
		cfg.Database.User, cfg.Database.Password, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		log.Fatalf("DB open: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("DB ping: %v", err)
	}

	schema.InitializeDatabase(db)

	// Fixed seed keeps reruns and demos reproducible
	rng := rand.New(rand.NewSource(42))
	now := time.Now().UTC()

	seedRequests(db, rng, now)
	seedAssets(db, rng, now)
	seedHealth(db, rng, now)
	seedAnalyst(db, now)

	log.Println("Seed complete: 50 requests, 30 assets, 40 health records, 1 analyst")
}

func seedRequests(db *sql.DB, rng *rand.Rand, now time.Time) {
	inserted := 0
	for i := 1; i <= 50; i++ {
		requestID := fmt.Sprintf("R-SEED-%03d", i)

		complaintType := complaintTypes[rng.Intn(len(complaintTypes))]
		city := cities[rng.Intn(len(cities))]
		name := citizenNames[rng.Intn(len(citizenNames))]
		phone := fmt.Sprintf("98765432%02d", i)
		severity := severities[rng.Intn(len(severities))]
		status := statuses[rng.Intn(len(statuses))]
		desc := descriptions[complaintType][rng.Intn(len(descriptions[complaintType]))]

		nameHash, phoneHash := utils.AnonymizeCitizen(name, phone)
		dateSubmitted := now.AddDate(0, 0, -(1 + rng.Intn(30)))

		var resolved sql.NullTime
		if status == "Resolved" {
			resolved = sql.NullTime{Time: now.AddDate(0, 0, -(1 + rng.Intn(7))), Valid: true}
		}

		var priority sql.NullFloat64
		if rng.Float64() > 0.3 {
			priority = sql.NullFloat64{Float64: 4.0 + rng.Float64()*6.0, Valid: true}
		}

		res, err := db.Exec(`
			INSERT IGNORE INTO citizen_requests
				(request_id, citizen_name_hash, phone_hash, email, complaint_type,
				 description, city, ward, district, severity, status, affected_count,
				 department, date_submitted, priority_score, resolved_date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			requestID, nameHash, phoneHash, fmt.Sprintf("citizen%d@example.com", i),
			complaintType, desc, city, fmt.Sprintf("Ward %d", 1+rng.Intn(25)), city,
			severity, status, 50+rng.Intn(1151),
			service.RouteDepartment(complaintType), dateSubmitted, priority, resolved)
		if err != nil {
			log.Fatalf("Insert request %s: %v", requestID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	log.Printf("citizen_requests: %d inserted", inserted)
}

func seedAssets(db *sql.DB, rng *rand.Rand, now time.Time) {
	inserted := 0
	for i := 1; i <= 30; i++ {
		assetID := fmt.Sprintf("INF%03d", i)

		assetType := assetTypes[rng.Intn(len(assetTypes))]
		city := cities[rng.Intn(len(cities))]
		condition := assetConditions[rng.Intn(len(assetConditions))]
		band := conditionRisk[condition]
		risk := band[0] + rng.Float64()*(band[1]-band[0])
		location := fmt.Sprintf("%s, %s", assetLocations[rng.Intn(len(assetLocations))], city)
		lastChecked := now.AddDate(0, 0, -(30 + rng.Intn(371)))

		res, err := db.Exec(`
			INSERT IGNORE INTO infrastructure_assets
				(asset_id, asset_type, location, asset_condition, risk_score, last_checked, notes)
			VALUES (?, ?, ?, ?, ?, ?, NULL)`,
			assetID, assetType, location, condition, risk, lastChecked)
		if err != nil {
			log.Fatalf("Insert asset %s: %v", assetID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	log.Printf("infrastructure_assets: %d inserted", inserted)
}

func seedHealth(db *sql.DB, rng *rand.Rand, now time.Time) {
	inserted := 0
	for i := 1; i <= 40; i++ {
		recordID := fmt.Sprintf("H%03d", i)

		disease := diseases[rng.Intn(len(diseases))]
		city := cities[rng.Intn(len(cities))]
		trend := healthTrends[rng.Intn(len(healthTrends))]

		var alertLevel string
		if trend == "Increasing" {
			alertLevel = []string{"Yellow", "Orange", "Red"}[rng.Intn(3)]
		} else {
			alertLevel = []string{"Green", "Yellow"}[rng.Intn(2)]
		}

		cases := 5 + rng.Intn(146)
		if alertLevel == "Orange" || alertLevel == "Red" {
			cases = 100 + rng.Intn(201)
		}

		res, err := db.Exec(`
			INSERT IGNORE INTO health_surveillance
				(record_id, disease_type, city, cases_reported, alert_level, trend, action_taken, date_reported)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			recordID, disease, city, cases, alertLevel, trend,
			alertActions[alertLevel], now.AddDate(0, 0, -(1+rng.Intn(20))))
		if err != nil {
			log.Fatalf("Insert health record %s: %v", recordID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}
	log.Printf("health_surveillance: %d inserted", inserted)
}

func seedAnalyst(db *sql.DB, now time.Time) {
	hash, err := utils.HashAnalystPassword("pilot-password")
	if err != nil {
		log.Fatalf("Hash analyst password: %v", err)
	}
	res, err := db.Exec(`
		INSERT IGNORE INTO analysts (email, password_hash, display_name, is_admin, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		"analyst@sevadesk.local", hash, "Pilot Analyst", false, now)
	if err != nil {
		log.Fatalf("Insert analyst: %v", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		log.Println("analysts: pilot analyst created")
	} else {
		log.Println("analysts: pilot analyst already present")
	}
}
