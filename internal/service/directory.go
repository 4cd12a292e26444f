package service

import (
	"github.com/rishidar/freelance-connector/internal/models"
	"github.com/rishidar/freelance-connector/internal/pkg/apperror"
)

// DefaultFreelancers возвращает каталог исполнителей, показываемый на сайте.
func DefaultFreelancers() []models.Freelancer {
	return []models.Freelancer{
		{
			ID:           "1",
			Name:         "Alex Johnson",
			Role:         "Web Development",
			Availability: models.AvailabilityAvailable,
			Skills:       []string{"React", "Node.js", "TypeScript", "Tailwind CSS"},
			Image:        "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg",
			Bio:          "Full-stack developer with 5+ years of experience building modern web applications.",
		},
		{
			ID:           "2",
			Name:         "Sarah Williams",
			Role:         "Graphic Design",
			Availability: models.AvailabilityInProgress,
			Skills:       []string{"Illustrator", "Photoshop", "Brand Identity", "Typography"},
			Image:        "https://images.pexels.com/photos/774909/pexels-photo-774909.jpeg",
			Bio:          "Creative designer specializing in brand identity and print design with an eye for detail.",
		},
		{
			ID:           "3",
			Name:         "Michael Chen",
			Role:         "3D Animation",
			Availability: models.AvailabilityAvailable,
			Skills:       []string{"Blender", "Cinema 4D", "After Effects", "3D Modeling"},
			Image:        "https://images.pexels.com/photos/1222271/pexels-photo-1222271.jpeg",
			Bio:          "3D artist creating stunning animations and visual effects for various media projects.",
		},
		{
			ID:           "4",
			Name:         "Emma Rodriguez",
			Role:         "Video Editing",
			Availability: models.AvailabilityNotAvailable,
			Skills:       []string{"Premiere Pro", "After Effects", "Color Grading", "Sound Design"},
			Image:        "https://images.pexels.com/photos/1239291/pexels-photo-1239291.jpeg",
			Bio:          "Video editor with experience in documentary, commercial, and narrative filmmaking.",
		},
		{
			ID:           "5",
			Name:         "David Kim",
			Role:         "Art/Illustration",
			Availability: models.AvailabilityAvailable,
			Skills:       []string{"Digital Painting", "Character Design", "Concept Art", "Procreate"},
			Image:        "https://images.pexels.com/photos/2379004/pexels-photo-2379004.jpeg",
			Bio:          "Illustrator creating vibrant character designs and concept art for games and animation.",
		},
		{
			ID:           "6",
			Name:         "Olivia Taylor",
			Role:         "UI/UX Design",
			Availability: models.AvailabilityInProgress,
			Skills:       []string{"Figma", "User Research", "Wireframing", "Prototyping"},
			Image:        "https://images.pexels.com/photos/415829/pexels-photo-415829.jpeg",
			Bio:          "UI/UX designer focused on creating intuitive and beautiful digital experiences.",
		},
		{
			ID:           "7",
			Name:         "James Wilson",
			Role:         "Content Creation",
			Availability: models.AvailabilityAvailable,
			Skills:       []string{"Copywriting", "Social Media", "SEO", "Content Strategy"},
			Image:        "https://images.pexels.com/photos/2379005/pexels-photo-2379005.jpeg",
			Bio:          "Content creator specializing in engaging social media content and SEO-optimized writing.",
		},
		{
			ID:           "8",
			Name:         "Sophia Martinez",
			Role:         "T-Shirt Design",
			Availability: models.AvailabilityCompleted,
			Skills:       []string{"Illustrator", "Typography", "Screen Printing", "Apparel Design"},
			Image:        "https://images.pexels.com/photos/1036623/pexels-photo-1036623.jpeg",
			Bio:          "T-shirt designer with a passion for creating wearable art and custom apparel.",
		},
	}
}

// DefaultLeadCategories возвращает направления формы подбора исполнителей.
func DefaultLeadCategories() []models.LeadCategory {
	return []models.LeadCategory{
		{ID: "1", Name: "Video Editor", CounterKey: "video_editors", Icon: "video",
			Image: "https://images.pexels.com/photos/2773498/pexels-photo-2773498.jpeg"},
		{ID: "2", Name: "Graphic Designer", CounterKey: "graphic_designers", Icon: "palette",
			Image: "https://images.pexels.com/photos/3153198/pexels-photo-3153198.jpeg"},
		{ID: "3", Name: "Web Developer", CounterKey: "web_developers", Icon: "code",
			Image: "https://images.pexels.com/photos/614117/pexels-photo-614117.jpeg"},
		{ID: "4", Name: "Content Creator", CounterKey: "content_creators", Icon: "file-text",
			Image: "https://images.pexels.com/photos/3059747/pexels-photo-3059747.jpeg"},
		{ID: "5", Name: "Human Resource Manager", CounterKey: "hr_managers", Icon: "users",
			Image: "https://images.pexels.com/photos/3184465/pexels-photo-3184465.jpeg"},
	}
}

// FreelancerService отдаёт каталог исполнителей.
type FreelancerService struct {
	list []models.Freelancer
	byID map[string]int
}

// NewFreelancerService создаёт сервис поверх списка профилей.
func NewFreelancerService(list []models.Freelancer) *FreelancerService {
	s := &FreelancerService{list: list, byID: make(map[string]int, len(list))}
	for i, f := range list {
		s.byID[f.ID] = i
	}
	return s
}

// List возвращает всех исполнителей в исходном порядке.
func (s *FreelancerService) List() []models.Freelancer {
	out := make([]models.Freelancer, len(s.list))
	copy(out, s.list)
	return out
}

// Get возвращает профиль по идентификатору.
func (s *FreelancerService) Get(id string) (models.Freelancer, error) {
	i, ok := s.byID[id]
	if !ok {
		return models.Freelancer{}, apperror.ErrFreelancerNotFound
	}
	return s.list[i], nil
}

// Resolve возвращает профили в порядке ids, пропуская неизвестные.
func (s *FreelancerService) Resolve(ids []string) []models.Freelancer {
	out := make([]models.Freelancer, 0, len(ids))
	for _, id := range ids {
		if f, err := s.Get(id); err == nil {
			out = append(out, f)
		}
	}
	return out
}
