package codec

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mesh-intelligence/hbnb/pkg/types"
)

// EncodeDocument renders stored records as the backing file's single JSON
// object, key -> record, in the given order.
func EncodeDocument(records []types.StoredRecord) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rec := range records {
		if i > 0 {
			buf.WriteString(", ")
		}
		key, err := json.Marshal(rec.Key)
		if err != nil {
			return nil, err
		}
		if !json.Valid(rec.Data) {
			return nil, fmt.Errorf("record %s is not valid JSON", rec.Key)
		}
		buf.Write(key)
		buf.WriteString(": ")
		buf.Write(rec.Data)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeDocument splits a backing file into its stored records, in file
// order. Any syntax error, or a top level that is not an object, is
// reported as ErrCorruptStore. Record content is not validated here.
func DecodeDocument(data []byte) ([]types.StoredRecord, error) {
	var records []types.StoredRecord
	err := decodeObject(data, func(key string, raw json.RawMessage) error {
		cp := make(json.RawMessage, len(raw))
		copy(cp, raw)
		records = append(records, types.StoredRecord{Key: key, Data: cp})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrCorruptStore, err)
	}
	return records, nil
}

// EncodeEntities encodes each entity into a stored record keyed by its
// composite key.
func EncodeEntities(entities []*types.Entity) ([]types.StoredRecord, error) {
	out := make([]types.StoredRecord, 0, len(entities))
	for _, e := range entities {
		data, err := Encode(e).MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", e.Key(), err)
		}
		out = append(out, types.StoredRecord{Key: e.Key(), Data: data})
	}
	return out, nil
}

// DecodeStored decodes one stored record into an entity.
func DecodeStored(rec types.StoredRecord, reg *types.Registry) (*types.Entity, error) {
	var r Record
	if err := json.Unmarshal(rec.Data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrCorruptStore, err)
	}
	return Decode(r, reg)
}
