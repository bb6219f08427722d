package models

import (
	"context"

	"github.com/mmdatafocus/supplychain_backend/utils"
)

// GetResource fetches a reference entity by id: redis first, then DB, then
// cache the result. Nil-safe when redis is not connected.
// (may return RecordNotFound error)
func GetResource[T any](ctx context.Context, id int) (*T, error) {

	// find in redis
	result, err := utils.RetrieveRedis[T](id)
	if err != nil {
		return nil, err
	}
	// if not found in redis
	if result == nil {
		// fetch from db
		result, err = utils.FetchModel[T](ctx, id)
		if err != nil {
			return nil, err
		}

		// store in redis
		if err := utils.StoreRedis[T](result, id); err != nil {
			return nil, err
		}
	}

	return result, nil
}
