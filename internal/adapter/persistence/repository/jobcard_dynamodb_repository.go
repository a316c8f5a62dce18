package repository

import (
	"context"
	"errors"
	"time"

	"biashara_backoffice/internal/domain/entities"
	"biashara_backoffice/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/shopspring/decimal"
)

const defaultJobCardsTableName = "job_cards"

type jobTaskAttr struct {
	ID          string `dynamodbav:"id"`
	Description string `dynamodbav:"description"`
	Done        bool   `dynamodbav:"done"`
}

type jobExpenseAttr struct {
	ID         string `dynamodbav:"id"`
	Category   string `dynamodbav:"category"`
	Amount     string `dynamodbav:"amount"`
	HasReceipt bool   `dynamodbav:"has_receipt"`
}

type jobCardItem struct {
	ID        string           `dynamodbav:"id"`
	JobNumber string           `dynamodbav:"job_number"`
	ClientID  string           `dynamodbav:"client_id"`
	VisitDate string           `dynamodbav:"visit_date"`
	Status    string           `dynamodbav:"status"`
	Tasks     []jobTaskAttr    `dynamodbav:"tasks,omitempty"`
	Expenses  []jobExpenseAttr `dynamodbav:"expenses,omitempty"`
	Notes     string           `dynamodbav:"notes,omitempty"`
	CreatedAt string           `dynamodbav:"created_at"`
	UpdatedAt string           `dynamodbav:"updated_at"`
}

// JobCardDynamoRepository persists JobCard entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//
// CompleteIfOpen writes COMPLETED conditionally on the card not already
// being COMPLETED or CANCELLED, making the rollup side effect idempotent
// under concurrent re-evaluation.

type JobCardDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IJobCardRepository = (*JobCardDynamoRepository)(nil)

func NewJobCardDynamoRepository(ddb *dynamodb.Client) *JobCardDynamoRepository {
	return &JobCardDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("JOB_CARDS_TABLE", defaultJobCardsTableName),
	}
}

func (r *JobCardDynamoRepository) Create(ctx context.Context, c entities.JobCard) (entities.JobCard, error) {
	av, err := attributevalue.MarshalMap(toJobCardItem(c))
	if err != nil {
		return entities.JobCard{}, err
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
		return entities.JobCard{}, err
	}
	return c, nil
}

func (r *JobCardDynamoRepository) GetByID(ctx context.Context, id string) (entities.JobCard, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.JobCard{}, err
	}
	if len(out.Item) == 0 {
		return entities.JobCard{}, nil
	}

	var it jobCardItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.JobCard{}, err
	}
	return fromJobCardItem(it), nil
}

func (r *JobCardDynamoRepository) CompleteIfOpen(ctx context.Context, id string) (entities.JobCard, error) {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	out, err := r.ddb.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConditionExpression: aws.String("attribute_exists(#id) AND NOT #status IN (:completed, :cancelled)"),
		UpdateExpression:    aws.String("SET #status = :completed, #updated_at = :updated_at"),
		ExpressionAttributeNames: map[string]string{
			"#id":         "id",
			"#status":     "status",
			"#updated_at": "updated_at",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":completed":  &types.AttributeValueMemberS{Value: string(entities.JobCardStatusCompleted)},
			":cancelled":  &types.AttributeValueMemberS{Value: string(entities.JobCardStatusCancelled)},
			":updated_at": &types.AttributeValueMemberS{Value: now},
		},
		ReturnValues: types.ReturnValueAllNew,
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if errors.As(err, &cfe) {
			return entities.JobCard{}, nil
		}
		return entities.JobCard{}, err
	}
	if len(out.Attributes) == 0 {
		return entities.JobCard{}, nil
	}
	var it jobCardItem
	if err := attributevalue.UnmarshalMap(out.Attributes, &it); err != nil {
		return entities.JobCard{}, err
	}
	return fromJobCardItem(it), nil
}

func toJobCardItem(c entities.JobCard) jobCardItem {
	tasks := make([]jobTaskAttr, 0, len(c.Tasks))
	for _, t := range c.Tasks {
		tasks = append(tasks, jobTaskAttr{ID: t.ID, Description: t.Description, Done: t.Done})
	}
	expenses := make([]jobExpenseAttr, 0, len(c.Expenses))
	for _, e := range c.Expenses {
		expenses = append(expenses, jobExpenseAttr{
			ID:         e.ID,
			Category:   e.Category,
			Amount:     e.Amount.String(),
			HasReceipt: e.HasReceipt,
		})
	}
	return jobCardItem{
		ID:        c.ID,
		JobNumber: c.JobNumber,
		ClientID:  c.ClientID,
		VisitDate: c.VisitDate.UTC().Format(time.RFC3339Nano),
		Status:    string(c.Status),
		Tasks:     tasks,
		Expenses:  expenses,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt: c.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromJobCardItem(it jobCardItem) entities.JobCard {
	tasks := make([]entities.JobTask, 0, len(it.Tasks))
	for _, t := range it.Tasks {
		tasks = append(tasks, entities.JobTask{ID: t.ID, Description: t.Description, Done: t.Done})
	}
	expenses := make([]entities.JobExpense, 0, len(it.Expenses))
	for _, e := range it.Expenses {
		amount, _ := decimal.NewFromString(e.Amount)
		expenses = append(expenses, entities.JobExpense{
			ID:         e.ID,
			Category:   e.Category,
			Amount:     amount,
			HasReceipt: e.HasReceipt,
		})
	}

	visitDate, _ := time.Parse(time.RFC3339Nano, it.VisitDate)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.JobCard{
		ID:        it.ID,
		JobNumber: it.JobNumber,
		ClientID:  it.ClientID,
		VisitDate: visitDate,
		Status:    entities.JobCardStatus(it.Status),
		Tasks:     tasks,
		Expenses:  expenses,
		Notes:     it.Notes,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}
