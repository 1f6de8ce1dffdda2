package service

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/freelance-escrow/internal/models"
	"github.com/ignatzorin/freelance-escrow/internal/repository"
)

// SeedService наполняет базу демонстрационными данными.
// Вызывается явно через dev-эндпоинт, а не при старте сервера.
type SeedService struct {
	users    *repository.UserRepository
	projects *repository.ProjectRepository
	bids     *repository.BidRepository
	payments *repository.PaymentRepository
}

// NewSeedService создаёт сервис генерации данных.
func NewSeedService(users *repository.UserRepository, projects *repository.ProjectRepository, bids *repository.BidRepository, payments *repository.PaymentRepository) *SeedService {
	return &SeedService{
		users:    users,
		projects: projects,
		bids:     bids,
		payments: payments,
	}
}

// SeedData создаёт пользователей, открытые проекты с откликами
// и пополняет кошельки клиентов.
func (s *SeedService) SeedData(ctx context.Context, numUsers, numProjects int) error {
	if numUsers <= 0 {
		numUsers = 10
	}
	if numProjects <= 0 {
		numProjects = 15
	}

	clients, freelancers, err := s.generateUsers(ctx, numUsers)
	if err != nil {
		return fmt.Errorf("seed service: не удалось создать пользователей: %w", err)
	}

	if err := s.generateProjects(ctx, clients, freelancers, numProjects); err != nil {
		return fmt.Errorf("seed service: не удалось создать проекты: %w", err)
	}

	return nil
}

// generateUsers создаёт клиентов и фрилансеров с пополненными кошельками.
func (s *SeedService) generateUsers(ctx context.Context, count int) ([]*models.User, []*models.User, error) {
	firstNames := []string{
		"Александр", "Дмитрий", "Максим", "Сергей", "Андрей", "Алексей", "Артём", "Илья",
		"Анна", "Мария", "Елена", "Ольга", "Екатерина", "Юлия", "Анастасия", "Дарья",
	}
	lastNames := []string{
		"Иванов", "Петров", "Смирнов", "Козлов", "Соколов", "Попов", "Лебедев", "Новиков",
		"Морозов", "Волков", "Васильев", "Зайцев", "Павлов", "Семёнов", "Фёдоров", "Белов",
	}
	domains := []string{"gmail.com", "yandex.ru", "mail.ru", "outlook.com"}

	var clients, freelancers []*models.User
	passwordHash, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)

	for i := 0; i < count; i++ {
		firstName := firstNames[rand.Intn(len(firstNames))]
		lastName := lastNames[rand.Intn(len(lastNames))]
		suffix := rand.Intn(100000)

		role := "freelancer"
		if i%3 == 0 { // 1/3 клиентов, 2/3 фрилансеров
			role = "client"
		}

		user := &models.User{
			Email:        fmt.Sprintf("user%d@%s", suffix, domains[rand.Intn(len(domains))]),
			Username:     fmt.Sprintf("%s_%s_%d", firstName, lastName, suffix),
			PasswordHash: string(passwordHash),
			Role:         role,
		}

		if err := s.users.Create(ctx, user); err != nil {
			return nil, nil, err
		}

		if role == "client" {
			// Клиентам сразу пополняем кошелёк, чтобы было чем платить
			if _, err := s.payments.Deposit(ctx, user.ID, float64(1000+rand.Intn(9000))); err != nil {
				return nil, nil, err
			}
			clients = append(clients, user)
		} else {
			freelancers = append(freelancers, user)
		}
	}

	if len(clients) == 0 || len(freelancers) == 0 {
		return nil, nil, fmt.Errorf("нужно хотя бы по одному клиенту и фрилансеру")
	}

	return clients, freelancers, nil
}

// generateProjects создаёт открытые проекты с откликами фрилансеров.
func (s *SeedService) generateProjects(ctx context.Context, clients, freelancers []*models.User, count int) error {
	titles := []string{
		"Разработка лендинга", "Мобильное приложение доставки", "Интеграция платёжной системы",
		"Редизайн интернет-магазина", "Телеграм-бот для записи", "Парсер объявлений",
		"CRM для небольшой компании", "Настройка CI/CD", "Миграция базы данных",
		"Дашборд аналитики продаж",
	}
	categories := []string{"web", "mobile", "design", "devops", "data"}

	for i := 0; i < count; i++ {
		client := clients[rand.Intn(len(clients))]

		project := &models.Project{
			ClientID:    client.ID,
			Title:       titles[rand.Intn(len(titles))],
			Description: "Нужен исполнитель с опытом похожих задач. Детали обсудим в переписке, ориентировочный объём работ описан в требованиях.",
			Budget:      float64(100 + rand.Intn(5000)),
			Duration:    3 + rand.Intn(30),
			Category:    categories[rand.Intn(len(categories))],
		}

		if err := s.projects.Create(ctx, project); err != nil {
			return err
		}

		numBids := rand.Intn(4)
		for j := 0; j < numBids && j < len(freelancers); j++ {
			bid := &models.Bid{
				ProjectID:    project.ID,
				FreelancerID: freelancers[(i+j)%len(freelancers)].ID,
				Amount:       project.Budget * (0.7 + rand.Float64()*0.5),
				DeliveryTime: 2 + rand.Intn(project.Duration),
				Proposal:     "Готов взяться за задачу, есть опыт похожих проектов и свободное время в ближайшие недели.",
			}
			if err := s.bids.Create(ctx, bid); err != nil {
				return err
			}
		}
	}

	return nil
}
