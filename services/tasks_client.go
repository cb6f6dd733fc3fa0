// services/tasks_client.go
package services

import (
	"context"

	"gramx-admin-gateway/models"
)

// DefaultTasksRoutePrefix is the canonical task route. Older backend
// deployments expose /api/tasks instead; the prefix is configurable so one
// binary serves both, with the legacy route treated as deprecated.
const DefaultTasksRoutePrefix = "/admin/tasks"

// TasksClient is the typed CRUD facade for reward tasks.
type TasksClient struct {
	gw     *Gateway
	prefix string
}

func NewTasksClient(gw *Gateway, routePrefix string) *TasksClient {
	if routePrefix == "" {
		routePrefix = DefaultTasksRoutePrefix
	}
	return &TasksClient{gw: gw, prefix: routePrefix}
}

// MutationKeys lists the cache keys a mutation on the given task affects.
func (c *TasksClient) MutationKeys(id string) []string {
	if id == "" {
		return []string{TasksCacheKey}
	}
	return []string{TasksCacheKey, TasksCacheKey + "/" + id}
}

func (c *TasksClient) List(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.gw.Get(ctx, c.prefix, &tasks); err != nil {
		return nil, NormalizeError(err)
	}
	return tasks, nil
}

func (c *TasksClient) Get(ctx context.Context, id string) (*models.Task, error) {
	var task models.Task
	if err := c.gw.Get(ctx, c.prefix+"/"+id, &task); err != nil {
		return nil, NormalizeError(err)
	}
	return &task, nil
}

func (c *TasksClient) Create(ctx context.Context, input models.TaskInput) (*models.Task, error) {
	var task models.Task
	if err := c.gw.Post(ctx, c.prefix, input, &task); err != nil {
		return nil, NormalizeError(err)
	}
	return &task, nil
}

func (c *TasksClient) Update(ctx context.Context, id string, input models.TaskInput) (*models.Task, error) {
	var task models.Task
	if err := c.gw.Put(ctx, c.prefix+"/"+id, input, &task); err != nil {
		return nil, NormalizeError(err)
	}
	return &task, nil
}

func (c *TasksClient) Delete(ctx context.Context, id string) error {
	if err := c.gw.Delete(ctx, c.prefix+"/"+id); err != nil {
		return NormalizeError(err)
	}
	return nil
}
