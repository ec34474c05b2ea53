// Package ddb decodes DynamoDB stream events carrying puzzle items.
package ddb

import (
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/cockroachdb/errors"
)

// KindPuzzle is the sort key value of puzzle items.
const KindPuzzle = "puzzle"

// PuzzleObject is the payload of a puzzle item.
type PuzzleObject struct {
	Rows  []string `dynamodbav:"rows" json:"rows"`
	Words []string `dynamodbav:"words" json:"words"`
}

// PuzzleRecord is a puzzle item as stored in the table.
type PuzzleRecord struct {
	ID     string       `dynamodbav:"pk"`     // PK field
	Kind   string       `dynamodbav:"sk"`     // SK field, KindPuzzle for puzzles
	Object PuzzleObject `dynamodbav:"object"` // object field
}

// IsPuzzle reports whether the record is a puzzle item.
func (r PuzzleRecord) IsPuzzle() bool {
	return r.Kind == KindPuzzle
}

// FromStreamImage converts a stream image, as decoded by aws-lambda-go, into
// the AttributeValue form used by the SDK and the attributevalue package.
func FromStreamImage(image map[string]events.DynamoDBAttributeValue) (map[string]types.AttributeValue, error) {
	out := make(map[string]types.AttributeValue, len(image))
	for k, v := range image {
		av, err := fromStreamValue(v)
		if err != nil {
			return nil, errors.Wrapf(err, "attribute %q", k)
		}
		out[k] = av
	}
	return out, nil
}

func fromStreamValue(v events.DynamoDBAttributeValue) (types.AttributeValue, error) {
	switch v.DataType() {
	case events.DataTypeString:
		return &types.AttributeValueMemberS{Value: v.String()}, nil
	case events.DataTypeNumber:
		return &types.AttributeValueMemberN{Value: v.Number()}, nil
	case events.DataTypeBinary:
		return &types.AttributeValueMemberB{Value: v.Binary()}, nil
	case events.DataTypeBoolean:
		return &types.AttributeValueMemberBOOL{Value: v.Boolean()}, nil
	case events.DataTypeNull:
		return &types.AttributeValueMemberNULL{Value: true}, nil
	case events.DataTypeStringSet:
		return &types.AttributeValueMemberSS{Value: v.StringSet()}, nil
	case events.DataTypeNumberSet:
		return &types.AttributeValueMemberNS{Value: v.NumberSet()}, nil
	case events.DataTypeBinarySet:
		return &types.AttributeValueMemberBS{Value: v.BinarySet()}, nil
	case events.DataTypeMap:
		m, err := FromStreamImage(v.Map())
		if err != nil {
			return nil, err
		}
		return &types.AttributeValueMemberM{Value: m}, nil
	case events.DataTypeList:
		items := v.List()
		l := make([]types.AttributeValue, len(items))
		for i, item := range items {
			av, err := fromStreamValue(item)
			if err != nil {
				return nil, errors.Wrapf(err, "L[%d]", i)
			}
			l[i] = av
		}
		return &types.AttributeValueMemberL{Value: l}, nil
	default:
		return nil, errors.Newf("unsupported attribute data type %d", v.DataType())
	}
}

// UnmarshalRecord converts a DynamoDB image (or key set) into a PuzzleRecord.
func UnmarshalRecord(image map[string]types.AttributeValue) (PuzzleRecord, error) {
	var record PuzzleRecord
	if err := attributevalue.UnmarshalMap(image, &record); err != nil {
		return PuzzleRecord{}, errors.Wrap(err, "failed to unmarshal puzzle record")
	}
	return record, nil
}

// UnmarshalStreamRecord converts a stream image (or key set) into a PuzzleRecord.
func UnmarshalStreamRecord(image map[string]events.DynamoDBAttributeValue) (PuzzleRecord, error) {
	item, err := FromStreamImage(image)
	if err != nil {
		return PuzzleRecord{}, errors.Wrap(err, "failed to convert stream image")
	}
	return UnmarshalRecord(item)
}

// MarshalRecord converts a PuzzleRecord into a DynamoDB item.
func MarshalRecord(record PuzzleRecord) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal puzzle record")
	}
	return item, nil
}
