package models

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
	StatusFinished = "FINISHED"
)

const (
	RolePatient = "PATIENT"
	RoleDoctor  = "DOCTOR"
)

const (
	// DefaultDoctorsCacheTTL время жизни кэша справочника врачей
	DefaultDoctorsCacheTTL = 5 * 60 // 5 минут в секундах

	// DefaultNotifyTimeout ограничение на одну отправку уведомления
	DefaultNotifyTimeout = 10 // секунд

	// ReminderHour час, в который отправляются напоминания о приёмах
	ReminderHour = 9

	// RateLimitRequests количество запросов в окне на один токен
	RateLimitRequests = 60

	// RateLimitWindow окно ограничения частоты запросов
	RateLimitWindow = 60 // 1 минута в секундах
)
