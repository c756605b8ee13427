package worker

import (
	"context"
	"encoding/json"

	"github.com/linea-next/internal/logger"
	"github.com/linea-next/internal/queue"
	"github.com/linea-next/internal/service"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	OrderService *service.OrderService
}

// NewConsumer 创建消费者
func NewConsumer(orderService *service.OrderService) *Consumer {
	return &Consumer{OrderService: orderService}
}

// Register 注册任务处理器
func (c *Consumer) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TaskOrderTimeoutCancel, c.HandleOrderTimeoutCancel)
	mux.HandleFunc(queue.TaskOrderStatusNotify, c.HandleOrderStatusNotify)
}

// HandleOrderTimeoutCancel 处理订单超时关单任务
// 订单已支付或已取消时任务直接完成，不重试。
func (c *Consumer) HandleOrderTimeoutCancel(ctx context.Context, task *asynq.Task) error {
	var payload queue.OrderTimeoutCancelPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Errorw("worker_timeout_payload_invalid", "error", err)
		return nil
	}
	if payload.OrderID == 0 {
		return nil
	}

	if err := c.OrderService.HandleTimeoutCancel(payload.OrderID); err != nil {
		logger.Errorw("worker_timeout_cancel_failed", "order_id", payload.OrderID, "error", err)
		return err
	}
	return nil
}

// HandleOrderStatusNotify 处理订单状态通知任务
// 当前实现落结构化日志，对接外部通知渠道时在此扩展。
func (c *Consumer) HandleOrderStatusNotify(ctx context.Context, task *asynq.Task) error {
	var payload queue.OrderStatusNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Errorw("worker_notify_payload_invalid", "error", err)
		return nil
	}
	if payload.OrderID == 0 {
		return nil
	}

	logger.Infow("order_status_notify",
		"order_id", payload.OrderID,
		"status", payload.Status,
	)
	return nil
}
