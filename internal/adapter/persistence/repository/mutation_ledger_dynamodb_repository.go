package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/gabrielauvo/auvoautonomo-sub005/internal/domain/entities"
	"github.com/gabrielauvo/auvoautonomo-sub005/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const defaultMutationsTableName = "work_order_mutations"

type processedMutationItem struct {
	UserID      string `dynamodbav:"user_id"`
	MutationID  string `dynamodbav:"mutation_id"`
	EntityID    string `dynamodbav:"entity_id,omitempty"`
	Action      string `dynamodbav:"action"`
	Status      string `dynamodbav:"status"`
	RecordRaw   string `dynamodbav:"record_raw,omitempty"`
	Error       string `dynamodbav:"error,omitempty"`
	ProcessedAt string `dynamodbav:"processed_at"`
}

// MutationLedgerDynamoRepository persists the idempotency ledger in DynamoDB.
//
// Table requirements:
//   - PK: user_id (string)
//   - SK: mutation_id (string)
//
// The composite key makes tenant scoping structural: one user's ledger can
// never collide with another's, whatever mutation ids their clients pick.
//
// Commit writes the ledger entry and the corresponding work-order change in
// a single TransactWriteItems call, so a crash can never separate them.

type MutationLedgerDynamoRepository struct {
	ddb             *dynamodb.Client
	tableName       string
	workOrdersTable string
}

var _ interfaces.IMutationLedgerRepository = (*MutationLedgerDynamoRepository)(nil)

func NewMutationLedgerDynamoRepository(ddb *dynamodb.Client) *MutationLedgerDynamoRepository {
	return &MutationLedgerDynamoRepository{
		ddb:             ddb,
		tableName:       getenvDefault("MUTATIONS_TABLE", defaultMutationsTableName),
		workOrdersTable: getenvDefault("WORK_ORDERS_TABLE", defaultWorkOrdersTableName),
	}
}

func (r *MutationLedgerDynamoRepository) Get(ctx context.Context, userID, mutationID string) (entities.ProcessedMutation, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"user_id":     &types.AttributeValueMemberS{Value: userID},
			"mutation_id": &types.AttributeValueMemberS{Value: mutationID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.ProcessedMutation{}, err
	}
	if len(out.Item) == 0 {
		return entities.ProcessedMutation{}, nil
	}

	var it processedMutationItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.ProcessedMutation{}, err
	}
	return fromProcessedMutationItem(it)
}

func (r *MutationLedgerDynamoRepository) Commit(ctx context.Context, entry entities.ProcessedMutation, write *interfaces.WorkOrderWrite) error {
	it, err := toProcessedMutationItem(entry)
	if err != nil {
		return err
	}
	av, err := attributevalue.MarshalMap(it)
	if err != nil {
		return err
	}

	items := []types.TransactWriteItem{
		{
			Put: &types.Put{
				TableName:           aws.String(r.tableName),
				Item:                av,
				ConditionExpression: aws.String("attribute_not_exists(#mutation_id)"),
				ExpressionAttributeNames: map[string]string{
					"#mutation_id": "mutation_id",
				},
			},
		},
	}

	switch {
	case write == nil:
		// Rejection: only the ledger entry is written.
	case write.Put != nil:
		woAV, err := attributevalue.MarshalMap(toWorkOrderItem(*write.Put))
		if err != nil {
			return err
		}
		put := &types.Put{
			TableName: aws.String(r.workOrdersTable),
			Item:      woAV,
		}
		if write.CreateOnly {
			put.ConditionExpression = aws.String("attribute_not_exists(#id)")
			put.ExpressionAttributeNames = map[string]string{"#id": "id"}
		}
		items = append(items, types.TransactWriteItem{Put: put})
	case write.DeleteID != "":
		items = append(items, types.TransactWriteItem{
			Delete: &types.Delete{
				TableName: aws.String(r.workOrdersTable),
				Key: map[string]types.AttributeValue{
					"id": &types.AttributeValueMemberS{Value: write.DeleteID},
				},
				ConditionExpression: aws.String("#user_id = :uid"),
				ExpressionAttributeNames: map[string]string{
					"#user_id": "user_id",
				},
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":uid": &types.AttributeValueMemberS{Value: entry.UserID},
				},
			},
		})
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			// Item order in CancellationReasons mirrors TransactItems:
			// index 0 is the ledger guard, index 1 the work-order write.
			for i, reason := range tce.CancellationReasons {
				if reason.Code == nil || *reason.Code != "ConditionalCheckFailed" {
					continue
				}
				if i == 0 {
					return interfaces.ErrMutationAlreadyProcessed
				}
				return interfaces.ErrWorkOrderIDTaken
			}
		}
		return err
	}
	return nil
}

func toProcessedMutationItem(entry entities.ProcessedMutation) (processedMutationItem, error) {
	recordRaw := ""
	if entry.Record != nil {
		b, err := json.Marshal(entry.Record)
		if err != nil {
			return processedMutationItem{}, err
		}
		recordRaw = string(b)
	}
	return processedMutationItem{
		UserID:      entry.UserID,
		MutationID:  entry.MutationID,
		EntityID:    entry.EntityID,
		Action:      string(entry.Action),
		Status:      string(entry.Status),
		RecordRaw:   recordRaw,
		Error:       entry.Error,
		ProcessedAt: entry.ProcessedAt.UTC().Format(time.RFC3339Nano),
	}, nil
}

func fromProcessedMutationItem(it processedMutationItem) (entities.ProcessedMutation, error) {
	processedAt, _ := time.Parse(time.RFC3339Nano, it.ProcessedAt)
	entry := entities.ProcessedMutation{
		MutationID:  it.MutationID,
		UserID:      it.UserID,
		EntityID:    it.EntityID,
		Action:      entities.MutationAction(it.Action),
		Status:      entities.MutationOutcome(it.Status),
		Error:       it.Error,
		ProcessedAt: processedAt,
	}
	if it.RecordRaw != "" {
		var wo entities.WorkOrder
		if err := json.Unmarshal([]byte(it.RecordRaw), &wo); err != nil {
			return entities.ProcessedMutation{}, err
		}
		entry.Record = &wo
	}
	return entry, nil
}
