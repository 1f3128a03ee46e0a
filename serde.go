package elastichashmap

import (
	"bytes"
	"encoding/base64"
	"github.com/sugawarayuuta/sonnet"
)

// jsonRecord - Wire representation of one key/value pair.
// Keys and values are base64 encoded strings, the same wire form encoding/json gives a byte slice.
type jsonRecord struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MarshalJSON - Implements json.Marshaler.
// The map is encoded as an array of key/value records in iteration order. Only contents are encoded,
// capacity, delta and hash algorithm are properties of the receiving map when unmarshalling.
func (E *ElasticHashMap) MarshalJSON() ([]byte, error) {
	records := make([]jsonRecord, 0, E.Len())

	iter := E.Iterator()
	for iter.HasNext() {
		record, err := iter.Next()
		if err != nil {
			return nil, err
		}
		records = append(records, jsonRecord{
			Key:   base64.StdEncoding.EncodeToString(record.Key),
			Value: base64.StdEncoding.EncodeToString(record.Value),
		})
	}

	return sonnet.Marshal(records)
}

// UnmarshalJSON - Implements json.Unmarshaler.
// The records are replayed through Set, records for keys already present replace their values. A zero
// valued map is initialized with the default capacity and delta and the internal hash algorithm
// before the records are applied.
func (E *ElasticHashMap) UnmarshalJSON(data []byte) (err error) {
	var records []jsonRecord
	err = sonnet.NewDecoder(bytes.NewReader(data)).Decode(&records)
	if err != nil {
		return
	}

	if E.table == nil {
		var fresh *ElasticHashMap
		fresh, _, err = NewElasticHashMap(DefaultInitialCapacity, DefaultDelta, nil)
		if err != nil {
			return
		}
		*E = *fresh
	}

	var key, value []byte
	for _, record := range records {
		key, err = base64.StdEncoding.DecodeString(record.Key)
		if err != nil {
			return
		}
		value, err = base64.StdEncoding.DecodeString(record.Value)
		if err != nil {
			return
		}
		_, err = E.Set(key, value)
		if err != nil {
			return
		}
	}

	return
}
