package validators

import "go.mongodb.org/mongo-driver/bson"

var PollValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"condominium_id",
			"title",
			"options",
			"expires_at",
			"is_active",
		},
		"additionalProperties": true,

		"properties": bson.M{
			"_id": bson.M{
				"bsonType": "objectId",
			},

			"condominium_id": bson.M{
				"bsonType": "string",
			},

			"title": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 150,
			},

			"options": bson.M{
				"bsonType": "array",
				"minItems": 2,
				"items": bson.M{
					"bsonType": "object",
					"required": []string{"id", "text", "votes"},
					"properties": bson.M{
						"id": bson.M{
							"bsonType": "string",
						},
						"text": bson.M{
							"bsonType":  "string",
							"minLength": 1,
							"maxLength": 200,
						},
						"votes": bson.M{
							"bsonType": "int",
							"minimum":  0,
						},
					},
				},
			},

			"expires_at": bson.M{
				"bsonType": "string",
			},

			"is_active": bson.M{
				"bsonType": "bool",
			},
		},
	},
}
