// services/batches_client.go
package services

import (
	"context"

	"gramx-admin-gateway/models"
)

// BatchesClient is the typed CRUD facade for token-sale batches.
type BatchesClient struct {
	gw *Gateway
}

func NewBatchesClient(gw *Gateway) *BatchesClient {
	return &BatchesClient{gw: gw}
}

// MutationKeys lists the cache keys a mutation on the given batch affects.
func (c *BatchesClient) MutationKeys(id string) []string {
	if id == "" {
		return []string{BatchesCacheKey}
	}
	return []string{BatchesCacheKey, BatchesCacheKey + "/" + id}
}

func (c *BatchesClient) List(ctx context.Context) ([]models.Batch, error) {
	var batches []models.Batch
	if err := c.gw.Get(ctx, "/admin/batches", &batches); err != nil {
		return nil, NormalizeError(err)
	}
	return batches, nil
}

func (c *BatchesClient) Get(ctx context.Context, id string) (*models.Batch, error) {
	var batch models.Batch
	if err := c.gw.Get(ctx, "/admin/batches/"+id, &batch); err != nil {
		return nil, NormalizeError(err)
	}
	return &batch, nil
}

func (c *BatchesClient) Create(ctx context.Context, input models.BatchInput) (*models.Batch, error) {
	var batch models.Batch
	if err := c.gw.Post(ctx, "/admin/batches", input, &batch); err != nil {
		return nil, NormalizeError(err)
	}
	return &batch, nil
}

func (c *BatchesClient) Update(ctx context.Context, id string, input models.BatchInput) (*models.Batch, error) {
	var batch models.Batch
	if err := c.gw.Put(ctx, "/admin/batches/"+id, input, &batch); err != nil {
		return nil, NormalizeError(err)
	}
	return &batch, nil
}

func (c *BatchesClient) Delete(ctx context.Context, id string) error {
	if err := c.gw.Delete(ctx, "/admin/batches/"+id); err != nil {
		return NormalizeError(err)
	}
	return nil
}
