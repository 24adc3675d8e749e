package store

import (
	"time"

	"umsjevari_go/models"
)

// Process-wide facades, one per managed entity. The fallback side of each is
// local to this process and not durable across restarts.
var (
	Notices    = NewEntity("notices", noticeFallback())
	Teachers   = NewEntity("teachers", teacherFallback())
	Gallery    = NewEntity("gallery", galleryFallback())
	Admissions = NewEntity("admissions", admissionFallback())
)

func noticeFallback() *Fallback[models.Notice] {
	return NewFallback(
		defaultNotices,
		func(n models.Notice) uint { return n.ID },
		func(n *models.Notice, id uint) { n.ID = id },
		func(n *models.Notice, t time.Time) { n.CreatedAt = t },
		func(n models.Notice) time.Time { return n.CreatedAt },
	)
}

func teacherFallback() *Fallback[models.Teacher] {
	return NewFallback(
		defaultTeachers,
		func(t models.Teacher) uint { return t.ID },
		func(t *models.Teacher, id uint) { t.ID = id },
		func(t *models.Teacher, ts time.Time) { t.CreatedAt = ts },
		func(t models.Teacher) time.Time { return t.CreatedAt },
	)
}

func galleryFallback() *Fallback[models.GalleryImage] {
	return NewFallback(
		defaultGalleryImages,
		func(g models.GalleryImage) uint { return g.ID },
		func(g *models.GalleryImage, id uint) { g.ID = id },
		func(g *models.GalleryImage, t time.Time) { g.CreatedAt = t },
		func(g models.GalleryImage) time.Time { return g.CreatedAt },
	)
}

func admissionFallback() *Fallback[models.Admission] {
	// No seeded defaults: an empty admission list is correct when the
	// database is down and nothing has been submitted to this process.
	return NewFallback(
		func() []models.Admission { return nil },
		func(a models.Admission) uint { return a.ID },
		func(a *models.Admission, id uint) { a.ID = id },
		func(a *models.Admission, t time.Time) { a.CreatedAt = t },
		func(a models.Admission) time.Time { return a.CreatedAt },
	)
}

// defaultNotices are shown on the public notice board while both stores are
// empty, so the site never renders a blank page during an outage.
func defaultNotices() []models.Notice {
	return []models.Notice{
		{
			BaseModel:   models.BaseModel{ID: 1, CreatedAt: baseSeedTime(1)},
			Title:       "School Reopens After Holidays",
			Description: "School will reopen on Monday, January 15th. All students are requested to attend classes regularly.",
		},
		{
			BaseModel:   models.BaseModel{ID: 2, CreatedAt: baseSeedTime(2)},
			Title:       "Annual Sports Meet",
			Description: "Annual sports meet will be held from February 20th to 22nd. All students are encouraged to participate.",
		},
		{
			BaseModel:   models.BaseModel{ID: 3, CreatedAt: baseSeedTime(3)},
			Title:       "Exam Schedule Released",
			Description: "Final examination schedule for Classes 1-8 has been released. Please check the notice board for the detailed timetable.",
		},
	}
}

func defaultTeachers() []models.Teacher {
	return []models.Teacher{
		{
			BaseModel: models.BaseModel{ID: 1, CreatedAt: baseSeedTime(1)},
			Name:      "Mr. Ritesh Tiwari",
			Subject:   "Mathematics Teacher",
			ImageURL:  "/images/teachers/teacher1.jpg",
		},
		{
			BaseModel: models.BaseModel{ID: 2, CreatedAt: baseSeedTime(2)},
			Name:      "Mrs. Sita Devi",
			Subject:   "Science Teacher",
			ImageURL:  "/images/teachers/teacher2.jpg",
		},
		{
			BaseModel: models.BaseModel{ID: 3, CreatedAt: baseSeedTime(3)},
			Name:      "Mr. Aman Singh",
			Subject:   "English Teacher",
			ImageURL:  "/images/teachers/teacher3.jpg",
		},
	}
}

func defaultGalleryImages() []models.GalleryImage {
	return []models.GalleryImage{
		{
			BaseModel: models.BaseModel{ID: 1, CreatedAt: baseSeedTime(1)},
			Title:     "School Campus",
			ImageURL:  "https://images.unsplash.com/photo-1523050854058-8df90110c9f1?w=800&h=600&fit=crop",
		},
		{
			BaseModel: models.BaseModel{ID: 2, CreatedAt: baseSeedTime(2)},
			Title:     "Classroom",
			ImageURL:  "https://images.unsplash.com/photo-1503676260728-1c00da094a0b?w=800&h=600&fit=crop",
		},
		{
			BaseModel: models.BaseModel{ID: 3, CreatedAt: baseSeedTime(3)},
			Title:     "Library",
			ImageURL:  "https://images.unsplash.com/photo-1540555700478-4be289fbecef?w=800&h=600&fit=crop",
		},
	}
}
