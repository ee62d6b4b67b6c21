package model

// Fixed unit catalog. Units are reference data: the application never
// creates or deletes them.
var MockUnits = []Unit{
	{ID: "1", Name: "Comando Central"},
	{ID: "2", Name: "10º BPM"},
	{ID: "3", Name: "12º BPM"},
	{ID: "4", Name: "15º BPM"},
	{ID: "5", Name: "22º BPM"},
}

// Credential is an entry of the fixed login table. Passwords are plain
// text on purpose: there is no real authentication in this system.
type Credential struct {
	Principal
	Password string
}

var MockCredentials = []Credential{
	{
		Principal: Principal{
			ID:    "1",
			Name:  "Admin Geral",
			Email: "admin@pmerj.gov.br",
			Role:  RoleAdmin,
			Unit:  Unit{ID: "1", Name: "Comando Central"},
		},
		Password: "admin123",
	},
	{
		Principal: Principal{
			ID:    "2",
			Name:  "João Silva",
			Email: "joao@pmerj.gov.br",
			Role:  RoleUser,
			Unit:  Unit{ID: "2", Name: "10º BPM"},
		},
		Password: "user123",
	},
}

// MockAccounts seeds the directory store on first run.
func MockAccounts() []Account {
	return []Account{
		{
			ID:        "1",
			Name:      "Admin Geral",
			Email:     "admin@pmerj.gov.br",
			Role:      RoleAdmin,
			Unit:      MockUnits[0],
			CreatedAt: "2025-01-01T00:00:00",
			LastLogin: "2025-05-08T08:30:00",
			Active:    true,
		},
		{
			ID:        "2",
			Name:      "João Silva",
			Email:     "joao@pmerj.gov.br",
			Role:      RoleUser,
			Unit:      MockUnits[1],
			CreatedAt: "2025-02-15T00:00:00",
			LastLogin: "2025-05-07T14:20:00",
			Active:    true,
		},
		{
			ID:        "3",
			Name:      "Maria Costa",
			Email:     "maria@pmerj.gov.br",
			Role:      RoleUser,
			Unit:      MockUnits[2],
			CreatedAt: "2025-03-10T00:00:00",
			LastLogin: "2025-05-05T09:45:00",
			Active:    true,
		},
		{
			ID:        "4",
			Name:      "Carlos Souza",
			Email:     "carlos@pmerj.gov.br",
			Role:      RoleUser,
			Unit:      MockUnits[3],
			CreatedAt: "2025-04-05T00:00:00",
			Active:    true,
		},
	}
}

// MockDocuments seeds the document store on first run.
func MockDocuments() []Document {
	return []Document{
		{
			ID:             "1",
			Title:          "Relatório Mensal",
			Description:    "Relatório mensal de atividades",
			UnitID:         "2",
			UnitName:       "10º BPM",
			DocumentDate:   "2025-05-01",
			SubmissionDate: "2025-05-02",
			Status:         StatusPending,
			FileURL:        "/documents/relatorio.pdf",
			FileName:       "relatorio.pdf",
			FileType:       "application/pdf",
			FileSize:       2 * 1024 * 1024,
			SubmittedBy:    ActorRef{ID: "2", Name: "João Silva"},
			Comments: []Comment{
				{
					ID:     "1",
					Text:   "Favor revisar a seção 3 do relatório",
					Date:   "2025-05-03T14:30:00",
					Author: ActorRef{ID: "1", Name: "Admin Geral"},
				},
			},
		},
		{
			ID:             "2",
			Title:          "Planilha de Ocorrências",
			Description:    "Planilha mensal de ocorrências registradas",
			UnitID:         "2",
			UnitName:       "10º BPM",
			DocumentDate:   "2025-05-01",
			SubmissionDate: "2025-05-01",
			Status:         StatusApproved,
			FileURL:        "/documents/ocorrencias.xlsx",
			FileName:       "ocorrencias.xlsx",
			FileType:       "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
			FileSize:       1024 * 1024,
			SubmittedBy:    ActorRef{ID: "2", Name: "João Silva"},
		},
		{
			ID:             "3",
			Title:          "Protocolo de Segurança",
			Description:    "Atualização do protocolo de segurança",
			UnitID:         "1",
			UnitName:       "Comando Central",
			DocumentDate:   "2025-04-28",
			SubmissionDate: "2025-04-30",
			Status:         StatusCompleted,
			FileURL:        "/documents/protocolo.docx",
			FileName:       "protocolo.docx",
			FileType:       "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
			FileSize:       5 * 1024 * 1024 / 2,
			SubmittedBy:    ActorRef{ID: "1", Name: "Admin Geral"},
		},
	}
}

// MockMissions seeds the mission store on first run.
func MockMissions() []Mission {
	return []Mission{
		{
			ID:          "1",
			Title:       "Relatório de Ocorrências",
			Description: "Enviar relatório diário de ocorrências registradas na unidade",
			Day:         DayMonday,
			UnitID:      "2",
			UnitName:    "10º BPM",
			CreatedAt:   "2025-05-01T10:00:00",
			DueDate:     "2025-05-12T23:59:59",
			CreatedBy:   &ActorRef{ID: "1", Name: "Admin Geral"},
			Submissions: []Submission{
				{
					ID:             "1",
					UserID:         "2",
					UserName:       "João Silva",
					FileName:       "relatorio_ocorrencias_10bpm.pdf",
					FileURL:        "/missions/relatorio_ocorrencias_10bpm.pdf",
					FileType:       "application/pdf",
					FileSize:       3 * 1024 * 1024 / 2,
					SubmissionDate: "2025-05-06T14:30:00",
					Comments: []Comment{
						{
							ID:     "1",
							Text:   "Relatório recebido, obrigado.",
							Date:   "2025-05-06T15:20:00",
							Author: ActorRef{ID: "1", Name: "Admin Geral"},
						},
					},
				},
			},
		},
		{
			ID:          "2",
			Title:       "Escala de Serviço",
			Description: "Enviar escala de serviço para a próxima semana",
			Day:         DayFriday,
			UnitID:      "2",
			UnitName:    "10º BPM",
			CreatedAt:   "2025-05-02T09:15:00",
			DueDate:     "2025-05-10T18:00:00",
			CreatedBy:   &ActorRef{ID: "1", Name: "Admin Geral"},
		},
		{
			ID:          "3",
			Title:       "Relatório de Efetivo",
			Description: "Enviar relatório de efetivo disponível",
			Day:         DayWednesday,
			UnitID:      "3",
			UnitName:    "12º BPM",
			CreatedAt:   "2025-05-03T11:30:00",
			DueDate:     "2025-05-15T23:59:59",
			CreatedBy:   &ActorRef{ID: "1", Name: "Admin Geral"},
		},
	}
}
