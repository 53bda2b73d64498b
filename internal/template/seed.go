package template

import "time"

// SeedProjects returns the built-in template catalog used when the remote
// backend is disabled or unreachable. The server never serves an empty
// catalog: these four templates are the floor.
func SeedProjects() []Project {
	return []Project{
		{
			ProjectID:   "nextjs-ai-chat",
			Title:       "Next.js AI Chat Template",
			Description: "A modern chat application template built with Next.js, TypeScript, and AI integration. Features real-time messaging, user authentication, and AI-powered responses.",
			Slug:        "nextjs-ai-chat",
			Domain:      "Web Development",
			CreatorID:   "user-123",
			CreatedAt:   mustTime("2024-12-01T10:00:00Z"),
			UpdatedAt:   mustTime("2024-12-01T10:00:00Z"),
			IsPublished: true,
			PublishedAt: timePtr("2024-12-01T10:00:00Z"),
			Features:    []string{"Next.js", "TypeScript", "AI Integration", "Real-time Chat", "Authentication"},
			Requirements: []Requirement{
				{Type: "Node.js", Description: "Version 18 or higher"},
				{Type: "Database", Description: "PostgreSQL or similar"},
				{Type: "API Key", Description: "OpenAI API key for AI features"},
			},
			Tools: []Tool{
				{Name: "Next.js", Type: "framework", Version: "14.0", Role: "Frontend framework"},
				{Name: "TypeScript", Type: "language", Version: "5.0", Role: "Type safety"},
				{Name: "Prisma", Type: "orm", Version: "5.0", Role: "Database ORM"},
			},
			Icon:      "💬",
			CardImage: "https://example.com/chat-app-preview.png",
			HeroImage: "https://example.com/chat-app-hero.png",
			Git: &Git{
				URL:    "https://github.com/memex-universe/nextjs-ai-chat-template.git",
				Branch: "main",
				Remote: "memex_universe",
			},
			Storage: &Storage{
				GCSPath:            "universe-templates/nextjs-ai-chat",
				SizeBytes:          1024000,
				CompressionEnabled: true,
			},
			Deployment: &Deployment{
				URL:          "https://nextjs-ai-chat-demo.vercel.app",
				Type:         "vercel",
				LastDeployed: timePtr("2024-12-01T10:00:00Z"),
			},
			GettingStartedScreen:      true,
			GettingStartedScreenIndex: intPtr(1),
			Pills: []Pill{
				{Label: "Quick Start", Prompt: "Set up the basic chat functionality", Icon: "🚀"},
				{Label: "Add AI", Prompt: "Integrate AI responses to the chat", Icon: "🤖"},
				{Label: "Deploy", Prompt: "Deploy to Vercel", Icon: "🌐"},
			},
		},
		{
			ProjectID:   "python-fastapi-starter",
			Title:       "Python FastAPI Starter",
			Description: "A robust FastAPI starter template with authentication, database integration, testing, and Docker support. Perfect for building modern APIs quickly.",
			Slug:        "python-fastapi-starter",
			Domain:      "Backend Development",
			CreatorID:   "user-456",
			CreatedAt:   mustTime("2024-11-15T14:30:00Z"),
			UpdatedAt:   mustTime("2024-11-20T09:15:00Z"),
			IsPublished: true,
			PublishedAt: timePtr("2024-11-15T14:30:00Z"),
			Features:    []string{"FastAPI", "SQLAlchemy", "JWT Auth", "Docker", "Testing", "API Documentation"},
			Requirements: []Requirement{
				{Type: "Python", Description: "Version 3.11 or higher"},
				{Type: "Database", Description: "PostgreSQL recommended"},
				{Type: "Docker", Description: "For containerized deployment"},
			},
			Tools: []Tool{
				{Name: "FastAPI", Type: "framework", Version: "0.104", Role: "API framework"},
				{Name: "SQLAlchemy", Type: "orm", Version: "2.0", Role: "Database ORM"},
				{Name: "Pytest", Type: "testing", Version: "7.4", Role: "Testing framework"},
			},
			Icon:      "⚡",
			CardImage: "https://example.com/fastapi-preview.png",
			HeroImage: "https://example.com/fastapi-hero.png",
			Git: &Git{
				URL:    "https://github.com/memex-universe/python-fastapi-starter.git",
				Branch: "main",
				Remote: "memex_universe",
			},
			Deployment: &Deployment{
				URL:          "https://fastapi-starter-demo.railway.app",
				Type:         "railway",
				LastDeployed: timePtr("2024-11-20T09:15:00Z"),
			},
			GettingStartedScreen:      true,
			GettingStartedScreenIndex: intPtr(2),
			Pills: []Pill{
				{Label: "Setup Environment", Prompt: "Set up the development environment with poetry", Icon: "🐍"},
				{Label: "Database Setup", Prompt: "Configure and run database migrations", Icon: "🗄️"},
				{Label: "Add Endpoints", Prompt: "Create your first API endpoints", Icon: "🔗"},
			},
		},
		{
			ProjectID:   "react-dashboard",
			Title:       "React Dashboard Template",
			Description: "A comprehensive dashboard template built with React, featuring charts, tables, user management, and responsive design. Includes dark mode and theming.",
			Slug:        "react-dashboard",
			Domain:      "Frontend Development",
			CreatorID:   "user-789",
			CreatedAt:   mustTime("2024-10-20T16:45:00Z"),
			UpdatedAt:   mustTime("2024-11-25T11:20:00Z"),
			IsPublished: true,
			PublishedAt: timePtr("2024-10-20T16:45:00Z"),
			Features:    []string{"React", "Charts", "Tables", "Dark Mode", "Responsive", "User Management"},
			Requirements: []Requirement{
				{Type: "Node.js", Description: "Version 18 or higher"},
				{Type: "Package Manager", Description: "npm or yarn"},
			},
			Tools: []Tool{
				{Name: "React", Type: "library", Version: "18.2", Role: "UI library"},
				{Name: "Material-UI", Type: "ui-library", Version: "5.14", Role: "Component library"},
				{Name: "Chart.js", Type: "visualization", Version: "4.4", Role: "Data visualization"},
			},
			Icon:      "📊",
			CardImage: "https://example.com/dashboard-preview.png",
			HeroImage: "https://example.com/dashboard-hero.png",
			Git: &Git{
				URL:    "https://github.com/memex-universe/react-dashboard-template.git",
				Branch: "main",
				Remote: "memex_universe",
			},
			Deployment: &Deployment{
				URL:          "https://react-dashboard-demo.netlify.app",
				Type:         "netlify",
				LastDeployed: timePtr("2024-11-25T11:20:00Z"),
			},
			Pills: []Pill{
				{Label: "Customize Theme", Prompt: "Customize colors and branding", Icon: "🎨"},
				{Label: "Add Charts", Prompt: "Create new chart components", Icon: "📈"},
				{Label: "User System", Prompt: "Set up user authentication and roles", Icon: "👥"},
			},
		},
		{
			ProjectID:   "ml-model-serving",
			Title:       "ML Model Serving API",
			Description: "A production-ready template for serving machine learning models via REST API. Includes model versioning, monitoring, and scalable deployment.",
			Slug:        "ml-model-serving",
			Domain:      "Machine Learning",
			CreatorID:   "user-101",
			CreatedAt:   mustTime("2024-09-10T08:00:00Z"),
			UpdatedAt:   mustTime("2024-12-01T15:30:00Z"),
			IsPublished: true,
			PublishedAt: timePtr("2024-09-10T08:00:00Z"),
			Features:    []string{"FastAPI", "MLflow", "Docker", "Model Versioning", "Monitoring", "Async Processing"},
			Requirements: []Requirement{
				{Type: "Python", Description: "Version 3.9 or higher"},
				{Type: "GPU", Description: "Optional but recommended for deep learning models"},
				{Type: "Storage", Description: "Model storage solution (S3, GCS, etc.)"},
			},
			Tools: []Tool{
				{Name: "FastAPI", Type: "framework", Version: "0.104", Role: "API framework"},
				{Name: "MLflow", Type: "ml-platform", Version: "2.8", Role: "Model tracking"},
				{Name: "Prometheus", Type: "monitoring", Version: "latest", Role: "Metrics collection"},
			},
			Icon:      "🤖",
			CardImage: "https://example.com/ml-api-preview.png",
			Git: &Git{
				URL:    "https://github.com/memex-universe/ml-model-serving-template.git",
				Branch: "main",
				Remote: "memex_universe",
			},
			Deployment: &Deployment{
				URL:          "https://ml-api-demo.herokuapp.com",
				Type:         "heroku",
				LastDeployed: timePtr("2024-12-01T15:30:00Z"),
			},
			GettingStartedScreen:      true,
			GettingStartedScreenIndex: intPtr(3),
			Pills: []Pill{
				{Label: "Load Model", Prompt: "Load and configure your ML model", Icon: "🧠"},
				{Label: "API Endpoints", Prompt: "Set up prediction endpoints", Icon: "🔌"},
				{Label: "Deploy Scale", Prompt: "Deploy with auto-scaling", Icon: "📈"},
			},
		},
	}
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func timePtr(s string) *time.Time {
	t := mustTime(s)
	return &t
}

func intPtr(i int) *int {
	return &i
}
