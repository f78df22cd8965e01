package validators

import "go.mongodb.org/mongo-driver/bson"

var ResourceValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"name",
			"condominium_ids",
			"period",
			"availability",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"name": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 100,
			},

			"condominium_ids": bson.M{
				"bsonType": "array",
				"minItems": 1,
				"items": bson.M{
					"bsonType": "string",
				},
			},

			"period": bson.M{
				"enum": []string{"daily", "hourly"},
			},

			"availability": bson.M{
				"bsonType": "object",
				"additionalProperties": bson.M{
					"bsonType": "object",
					"required": []string{"start", "end"},
					"properties": bson.M{
						"start": bson.M{
							"bsonType": "string",
							"pattern":  `^\d{2}:\d{2}$`,
						},
						"end": bson.M{
							"bsonType": "string",
							"pattern":  `^\d{2}:\d{2}$`,
						},
					},
				},
			},

			"booking_advance_limit_days": bson.M{
				"bsonType": "int",
				"minimum":  1,
				"maximum":  365,
			},
		},
	},
}
