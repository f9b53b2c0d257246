package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
	domainsync "github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/sync"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const (
	defaultWorkOrdersTableName = "work_orders"
	workOrdersUserIndex        = "user_id-updated_sort-index"
)

type workOrderItemDetailItem struct {
	ID        string `dynamodbav:"id"`
	Name      string `dynamodbav:"name"`
	ItemType  string `dynamodbav:"item_type"`
	Unit      string `dynamodbav:"unit"`
	Quantity  string `dynamodbav:"quantity"`
	UnitPrice string `dynamodbav:"unit_price"`
	Discount  string `dynamodbav:"discount"`
	Total     string `dynamodbav:"total"`
}

type workOrderItem struct {
	ID                string                    `dynamodbav:"id"`
	UserID            string                    `dynamodbav:"user_id"`
	UpdatedSort       string                    `dynamodbav:"updated_sort"`
	ClientID          string                    `dynamodbav:"client_id"`
	ClientName        string                    `dynamodbav:"client_name"`
	QuoteID           string                    `dynamodbav:"quote_id,omitempty"`
	WorkOrderTypeID   string                    `dynamodbav:"work_order_type_id,omitempty"`
	WorkOrderTypeName string                    `dynamodbav:"work_order_type_name,omitempty"`
	Title             string                    `dynamodbav:"title"`
	Description       string                    `dynamodbav:"description,omitempty"`
	Status            string                    `dynamodbav:"status"`
	ScheduledDate     string                    `dynamodbav:"scheduled_date,omitempty"`
	ScheduledStart    string                    `dynamodbav:"scheduled_start,omitempty"`
	ScheduledEnd      string                    `dynamodbav:"scheduled_end,omitempty"`
	StartedAt         string                    `dynamodbav:"started_at,omitempty"`
	FinishedAt        string                    `dynamodbav:"finished_at,omitempty"`
	Address           string                    `dynamodbav:"address,omitempty"`
	Notes             string                    `dynamodbav:"notes,omitempty"`
	TotalValue        string                    `dynamodbav:"total_value"`
	Active            bool                      `dynamodbav:"active"`
	Items             []workOrderItemDetailItem `dynamodbav:"items,omitempty"`
	CreatedAt         string                    `dynamodbav:"created_at"`
	UpdatedAt         string                    `dynamodbav:"updated_at"`
}

// WorkOrderDynamoRepository persists WorkOrder aggregates in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI user_id-updated_sort-index: PK user_id, SK updated_sort
//
// updated_sort is maintained on every write so the GSI walks records in the
// exact (updated_at, id) delta-sync order.

type WorkOrderDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IWorkOrderRepository = (*WorkOrderDynamoRepository)(nil)

func NewWorkOrderDynamoRepository(ddb *dynamodb.Client) *WorkOrderDynamoRepository {
	return &WorkOrderDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("WORK_ORDERS_TABLE", defaultWorkOrdersTableName),
	}
}

func (r *WorkOrderDynamoRepository) Create(ctx context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
	av, err := attributevalue.MarshalMap(toWorkOrderItem(wo))
	if err != nil {
		return entities.WorkOrder{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_not_exists(#id)"),
		ExpressionAttributeNames: map[string]string{
			"#id": "id",
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.WorkOrder{}, interfaces.ErrWorkOrderIDTaken
		}
		return entities.WorkOrder{}, err
	}
	return wo, nil
}

func (r *WorkOrderDynamoRepository) GetByID(ctx context.Context, userID, id string) (entities.WorkOrder, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.WorkOrder{}, err
	}
	if len(out.Item) == 0 {
		return entities.WorkOrder{}, nil
	}

	var it workOrderItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.WorkOrder{}, err
	}
	// A record owned by someone else behaves exactly like a miss.
	if it.UserID != userID {
		return entities.WorkOrder{}, nil
	}
	return fromWorkOrderItem(it), nil
}

func (r *WorkOrderDynamoRepository) Put(ctx context.Context, wo entities.WorkOrder) (entities.WorkOrder, error) {
	av, err := attributevalue.MarshalMap(toWorkOrderItem(wo))
	if err != nil {
		return entities.WorkOrder{}, err
	}

	_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(r.tableName),
		Item:                av,
		ConditionExpression: aws.String("attribute_exists(#id) AND #user_id = :uid"),
		ExpressionAttributeNames: map[string]string{
			"#id":      "id",
			"#user_id": "user_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: wo.UserID},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.WorkOrder{}, nil
		}
		return entities.WorkOrder{}, err
	}
	return wo, nil
}

func (r *WorkOrderDynamoRepository) Delete(ctx context.Context, userID, id string) error {
	_, err := r.ddb.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("#user_id = :uid"),
		ExpressionAttributeNames: map[string]string{
			"#user_id": "user_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			// Already gone, or never this user's record. Either way the
			// caller's view is unchanged.
			return nil
		}
		return err
	}
	return nil
}

func (r *WorkOrderDynamoRepository) ListByUser(ctx context.Context, userID string, limit int) ([]entities.WorkOrder, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(workOrdersUserIndex),
		KeyConditionExpression: aws.String("#user_id = :uid"),
		ExpressionAttributeNames: map[string]string{
			"#user_id": "user_id",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":uid": &types.AttributeValueMemberS{Value: userID},
		},
		Limit:            aws.Int32(int32(limit)),
		ScanIndexForward: aws.Bool(false),
	})
	if err != nil {
		return nil, err
	}

	items := make([]entities.WorkOrder, 0, len(out.Items))
	for _, raw := range out.Items {
		var it workOrderItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, err
		}
		items = append(items, fromWorkOrderItem(it))
	}
	return items, nil
}

func (r *WorkOrderDynamoRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	total := 0
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:              aws.String(r.tableName),
			IndexName:              aws.String(workOrdersUserIndex),
			KeyConditionExpression: aws.String("#user_id = :uid"),
			ExpressionAttributeNames: map[string]string{
				"#user_id": "user_id",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":uid": &types.AttributeValueMemberS{Value: userID},
			},
			Select:            types.SelectCount,
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return 0, err
		}
		total += int(out.Count)
		if len(out.LastEvaluatedKey) == 0 {
			return total, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

// QueryChangedAfter walks the user's GSI partition in updated_sort order,
// strictly after afterSortKey, accumulating records that match the filter
// until limit is reached or the partition is exhausted. Scope matching runs
// here in Go rather than in a FilterExpression so that the predicate is one
// tested function shared with the domain layer.
func (r *WorkOrderDynamoRepository) QueryChangedAfter(ctx context.Context, userID, afterSortKey string, filter domainsync.Filter, limit int) ([]entities.WorkOrder, error) {
	if limit <= 0 {
		return nil, nil
	}

	keyCond := "#user_id = :uid"
	names := map[string]string{"#user_id": "user_id"}
	values := map[string]types.AttributeValue{
		":uid": &types.AttributeValueMemberS{Value: userID},
	}
	if afterSortKey != "" {
		keyCond += " AND #updated_sort > :after"
		names["#updated_sort"] = "updated_sort"
		values[":after"] = &types.AttributeValueMemberS{Value: afterSortKey}
	}

	matched := make([]entities.WorkOrder, 0, limit)
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
			TableName:                 aws.String(r.tableName),
			IndexName:                 aws.String(workOrdersUserIndex),
			KeyConditionExpression:    aws.String(keyCond),
			ExpressionAttributeNames:  names,
			ExpressionAttributeValues: values,
			ScanIndexForward:          aws.Bool(true),
			ExclusiveStartKey:         startKey,
		})
		if err != nil {
			return nil, err
		}

		for _, raw := range out.Items {
			var it workOrderItem
			if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
				return nil, err
			}
			wo := fromWorkOrderItem(it)
			if !filter.Matches(&wo) {
				continue
			}
			matched = append(matched, wo)
			if len(matched) == limit {
				return matched, nil
			}
		}

		if len(out.LastEvaluatedKey) == 0 {
			return matched, nil
		}
		startKey = out.LastEvaluatedKey
	}
}

func toWorkOrderItem(wo entities.WorkOrder) workOrderItem {
	return workOrderItem{
		ID:                wo.ID,
		UserID:            wo.UserID,
		UpdatedSort:       domainsync.SortKey(wo.UpdatedAt, wo.ID),
		ClientID:          wo.ClientID,
		ClientName:        wo.ClientName,
		QuoteID:           wo.QuoteID,
		WorkOrderTypeID:   wo.WorkOrderTypeID,
		WorkOrderTypeName: wo.WorkOrderTypeName,
		Title:             wo.Title,
		Description:       wo.Description,
		Status:            string(wo.Status),
		ScheduledDate:     formatOptionalTime(wo.ScheduledDate),
		ScheduledStart:    formatOptionalTime(wo.ScheduledStart),
		ScheduledEnd:      formatOptionalTime(wo.ScheduledEnd),
		StartedAt:         formatOptionalTime(wo.StartedAt),
		FinishedAt:        formatOptionalTime(wo.FinishedAt),
		Address:           wo.Address,
		Notes:             wo.Notes,
		TotalValue:        floatToString(wo.TotalValue),
		Active:            wo.Active,
		Items:             toItemDetailItems(wo.Items),
		CreatedAt:         wo.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:         wo.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromWorkOrderItem(it workOrderItem) entities.WorkOrder {
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	totalValue, _ := strconv.ParseFloat(it.TotalValue, 64)
	return entities.WorkOrder{
		ID:                it.ID,
		UserID:            it.UserID,
		ClientID:          it.ClientID,
		ClientName:        it.ClientName,
		QuoteID:           it.QuoteID,
		WorkOrderTypeID:   it.WorkOrderTypeID,
		WorkOrderTypeName: it.WorkOrderTypeName,
		Title:             it.Title,
		Description:       it.Description,
		Status:            entities.WorkOrderStatus(it.Status),
		ScheduledDate:     parseOptionalTime(it.ScheduledDate),
		ScheduledStart:    parseOptionalTime(it.ScheduledStart),
		ScheduledEnd:      parseOptionalTime(it.ScheduledEnd),
		StartedAt:         parseOptionalTime(it.StartedAt),
		FinishedAt:        parseOptionalTime(it.FinishedAt),
		Address:           it.Address,
		Notes:             it.Notes,
		TotalValue:        totalValue,
		Active:            it.Active,
		Items:             fromItemDetailItems(it.Items),
		CreatedAt:         createdAt,
		UpdatedAt:         updatedAt,
	}
}

func toItemDetailItems(items []entities.WorkOrderItemDetail) []workOrderItemDetailItem {
	if len(items) == 0 {
		return nil
	}
	out := make([]workOrderItemDetailItem, 0, len(items))
	for _, it := range items {
		out = append(out, workOrderItemDetailItem{
			ID:        it.ID,
			Name:      it.Name,
			ItemType:  it.ItemType,
			Unit:      it.Unit,
			Quantity:  floatToString(it.Quantity),
			UnitPrice: floatToString(it.UnitPrice),
			Discount:  floatToString(it.Discount),
			Total:     floatToString(it.Total),
		})
	}
	return out
}

func fromItemDetailItems(items []workOrderItemDetailItem) []entities.WorkOrderItemDetail {
	if len(items) == 0 {
		return nil
	}
	out := make([]entities.WorkOrderItemDetail, 0, len(items))
	for _, it := range items {
		quantity, _ := strconv.ParseFloat(it.Quantity, 64)
		unitPrice, _ := strconv.ParseFloat(it.UnitPrice, 64)
		discount, _ := strconv.ParseFloat(it.Discount, 64)
		total, _ := strconv.ParseFloat(it.Total, 64)
		out = append(out, entities.WorkOrderItemDetail{
			ID:        it.ID,
			Name:      it.Name,
			ItemType:  it.ItemType,
			Unit:      it.Unit,
			Quantity:  quantity,
			UnitPrice: unitPrice,
			Discount:  discount,
			Total:     total,
		})
	}
	return out
}

func formatOptionalTime(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.UTC().Format(time.RFC3339Nano)
}

func parseOptionalTime(s string) *time.Time {
	if s == "" {
		return nil
	}
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return nil
	}
	return &ts
}

func floatToString(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
