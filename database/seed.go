package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
	"github.com/sahilchouksey/college-directory/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Println("🌱 Starting database seeding...")

	// Run seeds in order (cutoffs reference colleges)
	if err := s.SeedColleges(); err != nil {
		return fmt.Errorf("failed to seed colleges: %w", err)
	}

	if err := s.SeedAdmissionRequirements(); err != nil {
		return fmt.Errorf("failed to seed admission requirements: %w", err)
	}

	if err := s.SeedCutoffs(); err != nil {
		return fmt.Errorf("failed to seed cutoffs: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SampleColleges is a small set of well-known Maharashtra institutions
func SampleColleges() []model.CollegeImport {
	yes, no := true, false
	year := func(y int) *int { return &y }
	str := func(s string) *string { return &s }

	return []model.CollegeImport{
		{
			Name:            "College of Engineering Pune",
			Category:        "Engineering",
			District:        "Pune",
			City:            "Pune",
			Type:            "Government",
			Autonomous:      &yes,
			Minority:        &no,
			HostelAvailable: &yes,
			EstablishedYear: year(1854),
			Website:         str("https://www.coep.org.in"),
			Pincode:         str("411005"),
		},
		{
			Name:            "Veermata Jijabai Technological Institute",
			Category:        "Engineering",
			District:        "Mumbai City",
			City:            "Mumbai",
			Type:            "Government Aided",
			Autonomous:      &yes,
			Minority:        &no,
			HostelAvailable: &yes,
			EstablishedYear: year(1887),
			Website:         str("https://vjti.ac.in"),
			Pincode:         str("400019"),
		},
		{
			Name:            "Government Medical College Nagpur",
			Category:        "Medical",
			District:        "Nagpur",
			City:            "Nagpur",
			Type:            "Government",
			Autonomous:      &no,
			Minority:        &no,
			HostelAvailable: &yes,
			EstablishedYear: year(1947),
			Website:         str("https://www.gmcnagpur.org"),
		},
		{
			Name:            "Fergusson College",
			Category:        "Arts, Science and Commerce",
			District:        "Pune",
			City:            "Pune",
			Type:            "Government Aided",
			Autonomous:      &yes,
			Minority:        &no,
			HostelAvailable: &yes,
			EstablishedYear: year(1885),
			Website:         str("https://www.fergusson.edu"),
		},
		{
			Name:            "Symbiosis Law School",
			Category:        "Law",
			District:        "Pune",
			City:            "Pune",
			Type:            "Private",
			Autonomous:      &no,
			Minority:        &yes,
			HostelAvailable: &yes,
			EstablishedYear: year(1977),
			Website:         str("https://www.symlaw.ac.in"),
		},
	}
}

// SeedColleges upserts the sample colleges. Re-running it leaves the table unchanged.
func (s *Seeder) SeedColleges() error {
	store := NewGORMStore(s.db)
	ctx := context.Background()

	inserted := 0
	for _, record := range SampleColleges() {
		record := record
		record.Normalize()
		err := store.WithCollegeWriter(ctx, func(w CollegeWriter) error {
			college := record.College()
			created, err := w.UpsertCollege(ctx, college)
			if err != nil {
				return err
			}
			if contact := record.ContactInfo(college.ID); contact != nil {
				if err := w.MergeContactInfo(ctx, contact); err != nil {
					return err
				}
			}
			if created {
				inserted++
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("college %q: %w", record.Name, err)
		}
	}

	if inserted == 0 {
		log.Println("⏭️  Sample colleges already exist, skipping...")
		return nil
	}

	log.Printf("✅ Created %d colleges\n", inserted)
	return nil
}

// SeedAdmissionRequirements creates the per-category admission requirements
func (s *Seeder) SeedAdmissionRequirements() error {
	var count int64
	if err := s.db.Model(&model.AdmissionRequirement{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Admission requirements already exist, skipping...")
		return nil
	}

	str := func(v string) *string { return &v }

	requirements := []model.AdmissionRequirement{
		{
			Category:            "Engineering",
			DocumentsRequired:   pq.StringArray{"SSC Marksheet", "HSC Marksheet", "MHT-CET / JEE Main Scorecard", "Domicile Certificate", "Caste Certificate (if applicable)"},
			EligibilityCriteria: str("HSC with Physics and Mathematics plus Chemistry, Biotechnology or a technical vocational subject, with at least 45% aggregate (40% for reserved categories)."),
			ApplicationProcess:  str("Register on the State CET Cell portal, verify documents at a facilitation centre and fill the CAP option form."),
		},
		{
			Category:            "Medical",
			DocumentsRequired:   pq.StringArray{"SSC Marksheet", "HSC Marksheet", "NEET UG Scorecard", "Domicile Certificate", "Nationality Certificate"},
			EligibilityCriteria: str("HSC with Physics, Chemistry, Biology and English, and a qualifying NEET UG percentile."),
			ApplicationProcess:  str("Register for state quota counselling with the State CET Cell and submit preferences in each round."),
		},
		{
			Category:            "Law",
			DocumentsRequired:   pq.StringArray{"SSC Marksheet", "HSC Marksheet", "MH-CET Law Scorecard"},
			EligibilityCriteria: str("HSC in any stream with at least 45% aggregate for the five-year LL.B. programme."),
			ApplicationProcess:  str("Appear for MH-CET Law and take part in the centralised admission process."),
		},
		{
			Category:            "Arts, Science and Commerce",
			DocumentsRequired:   pq.StringArray{"SSC Marksheet", "HSC Marksheet", "Leaving Certificate"},
			EligibilityCriteria: str("HSC pass in the relevant stream."),
			ApplicationProcess:  str("Apply directly to the college through the university admission portal."),
		},
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "category"}},
		DoNothing: true,
	}).Create(&requirements).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d admission requirements\n", len(requirements))
	return nil
}

type sampleCutoff struct {
	College  string
	District string
	City     string
	Year     int
	Branch   string
	Category string
	Marks    float64
}

// SeedCutoffs creates sample cutoffs for the seeded colleges
func (s *Seeder) SeedCutoffs() error {
	var count int64
	if err := s.db.Model(&model.Cutoff{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("⏭️  Cutoffs already exist, skipping...")
		return nil
	}

	samples := []sampleCutoff{
		{"College of Engineering Pune", "Pune", "Pune", 2024, "Computer Engineering", "OPEN", 99.62},
		{"College of Engineering Pune", "Pune", "Pune", 2023, "Computer Engineering", "OPEN", 99.51},
		{"College of Engineering Pune", "Pune", "Pune", 2024, "Mechanical Engineering", "OPEN", 97.84},
		{"Veermata Jijabai Technological Institute", "Mumbai City", "Mumbai", 2024, "Computer Engineering", "OPEN", 99.70},
		{"Veermata Jijabai Technological Institute", "Mumbai City", "Mumbai", 2023, "Computer Engineering", "OPEN", 99.58},
	}

	now := time.Now()
	cutoffs := make([]model.Cutoff, 0, len(samples))
	for _, sample := range samples {
		var college model.College
		err := s.db.Where("name = ? AND district = ? AND city = ?", sample.College, sample.District, sample.City).
			Take(&college).Error
		if err != nil {
			log.Printf("⚠️  College %s not found, skipping its cutoffs\n", sample.College)
			continue
		}

		sample := sample
		cutoffs = append(cutoffs, model.Cutoff{
			CollegeID:   college.ID,
			Year:        sample.Year,
			Branch:      &sample.Branch,
			Category:    &sample.Category,
			CutoffMarks: &sample.Marks,
			CreatedAt:   &now,
		})
	}

	if len(cutoffs) == 0 {
		return nil
	}

	if err := s.db.Create(&cutoffs).Error; err != nil {
		return err
	}

	log.Printf("✅ Created %d cutoffs\n", len(cutoffs))
	return nil
}

// RunSeeds is a convenience function to run all seeds
func RunSeeds(db *gorm.DB) error {
	seeder := NewSeeder(db)
	return seeder.SeedAll()
}
