package dynamo

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/logging"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/models"
	"github.com/ArowuTest/bridgetunes-spin-wheel/internal/repositories"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// spinItem is the stored shape; PK is email#date so the conditional put enforces one spin per day
type spinItem struct {
	PK        string    `dynamodbav:"PK"`
	Name      string    `dynamodbav:"Name"`
	Email     string    `dynamodbav:"Email"`
	Phone     string    `dynamodbav:"Phone"`
	Prize     string    `dynamodbav:"Prize"`
	Date      string    `dynamodbav:"Date"`
	CreatedAt time.Time `dynamodbav:"CreatedAt"`
}

func spinKey(email, date string) string {
	return email + "#" + date
}

func toItem(spin *models.SpinRecord) spinItem {
	return spinItem{
		PK:        spinKey(spin.Email, spin.Date),
		Name:      spin.Name,
		Email:     spin.Email,
		Phone:     spin.Phone,
		Prize:     spin.Prize,
		Date:      spin.Date,
		CreatedAt: spin.CreatedAt,
	}
}

func (i spinItem) toRecord() *models.SpinRecord {
	return &models.SpinRecord{
		Name:      i.Name,
		Email:     i.Email,
		Phone:     i.Phone,
		Prize:     i.Prize,
		Date:      i.Date,
		CreatedAt: i.CreatedAt,
	}
}

// SpinRepository stores spins in a DynamoDB table. It does not assign numeric ids.
type SpinRepository struct {
	Client    *dynamodb.Client
	TableName string
}

var _ repositories.SpinRepository = (*SpinRepository)(nil)

// NewClient builds a DynamoDB client for region, optionally pointed at a custom endpoint (localstack)
func NewClient(ctx context.Context, region, endpoint string) (*dynamodb.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if endpoint != "" {
		//nolint:staticcheck
		opts = append(opts, awsconfig.WithEndpointResolverWithOptions(
			aws.EndpointResolverWithOptionsFunc(func(service, region string, options ...interface{}) (aws.Endpoint, error) {
				return aws.Endpoint{URL: endpoint, HostnameImmutable: true}, nil
			}),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return dynamodb.NewFromConfig(cfg), nil
}

// EnsureSchema creates the table with on-demand billing when it does not exist
func (s *SpinRepository) EnsureSchema(ctx context.Context) error {
	_, err := s.Client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: &s.TableName})
	if err == nil {
		return nil
	}
	var notFound *types.ResourceNotFoundException
	if !errors.As(err, &notFound) {
		logging.Log.Errorf("SPIN: describe table %s failed: %v", s.TableName, err)
		return err
	}

	_, err = s.Client.CreateTable(ctx, &dynamodb.CreateTableInput{
		TableName: &s.TableName,
		AttributeDefinitions: []types.AttributeDefinition{
			{AttributeName: aws.String("PK"), AttributeType: types.ScalarAttributeTypeS},
		},
		KeySchema: []types.KeySchemaElement{
			{AttributeName: aws.String("PK"), KeyType: types.KeyTypeHash},
		},
		BillingMode: types.BillingModePayPerRequest,
	})
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return nil
		}
		logging.Log.Errorf("SPIN: create table %s failed: %v", s.TableName, err)
		return err
	}
	logging.Log.Infof("SPIN: created table %s", s.TableName)
	return nil
}

// FindByEmailAndDate gets the spin keyed by email#date
func (s *SpinRepository) FindByEmailAndDate(ctx context.Context, email, date string) (*models.SpinRecord, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"PK": spinKey(email, date)})
	if err != nil {
		return nil, err
	}

	out, err := s.Client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      &s.TableName,
		Key:            key,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		logging.Log.Errorf("SPIN: GetItem failed: %v", err)
		return nil, err
	}
	if out.Item == nil {
		return nil, repositories.ErrSpinNotFound
	}

	var item spinItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		logging.Log.Errorf("SPIN: failed to unmarshal spin: %v", err)
		return nil, err
	}
	return item.toRecord(), nil
}

// Create puts the spin only if no item exists for email#date
func (s *SpinRepository) Create(ctx context.Context, spin *models.SpinRecord) error {
	if spin.CreatedAt.IsZero() {
		spin.CreatedAt = time.Now().UTC()
	}
	item, err := attributevalue.MarshalMap(toItem(spin))
	if err != nil {
		logging.Log.Errorf("SPIN: failed to marshal spin: %v", err)
		return err
	}

	_, err = s.Client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           &s.TableName,
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(PK)"),
	})
	if err != nil {
		var cce *types.ConditionalCheckFailedException
		if errors.As(err, &cce) {
			return repositories.ErrSpinAlreadyClaimed
		}
		logging.Log.Errorf("SPIN: PutItem failed: %v", err)
		return err
	}
	return nil
}

// FindByDate scans for a day's spins, ordered by creation time
func (s *SpinRepository) FindByDate(ctx context.Context, date string) ([]*models.SpinRecord, error) {
	var lastEvaluatedKey map[string]types.AttributeValue
	spins := []*models.SpinRecord{}

	for {
		out, err := s.Client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                &s.TableName,
			ExclusiveStartKey:        lastEvaluatedKey,
			FilterExpression:         aws.String("#d = :date"),
			ExpressionAttributeNames: map[string]string{"#d": "Date"},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":date": &types.AttributeValueMemberS{Value: date},
			},
		})
		if err != nil {
			logging.Log.Errorf("SPIN: scan failed: %v", err)
			return nil, err
		}

		var items []spinItem
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
			logging.Log.Errorf("SPIN: failed to unmarshal spin list: %v", err)
			return nil, err
		}
		for _, item := range items {
			spins = append(spins, item.toRecord())
		}

		if out.LastEvaluatedKey == nil {
			break
		}
		lastEvaluatedKey = out.LastEvaluatedKey
	}

	sort.SliceStable(spins, func(i, j int) bool {
		return spins[i].CreatedAt.Before(spins[j].CreatedAt)
	})
	return spins, nil
}

// Close is a no-op; the SDK client holds no connections that need releasing
func (s *SpinRepository) Close(_ context.Context) error {
	return nil
}
