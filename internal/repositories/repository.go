package repositories

import (
	"meeplelog/internal/database"
)

type Repository struct {
	Collection CollectionRepository
}

func New(db database.DB) Repository {
	return Repository{
		Collection: NewCollectionRepository(&db),
	}
}
