package services

import (
	"meeplelog/internal/repositories"
)

type Service struct {
	Stats     *StatsService
	Transfer  *TransferService
	Scheduler *SchedulerService
}

func New(repos repositories.Repository) Service {
	return Service{
		Stats:     NewStatsService(),
		Transfer:  NewTransferService(repos.Collection),
		Scheduler: NewSchedulerService(),
	}
}
