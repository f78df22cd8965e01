package validators

import "go.mongodb.org/mongo-driver/bson"

var NewsletterValidator = bson.M{
	"$jsonSchema": bson.M{
		"bsonType": "object",
		"required": []string{
			"condominium_id",
			"title",
			"description",
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

			"description": bson.M{
				"bsonType":  "string",
				"minLength": 2,
				"maxLength": 5000,
			},

			"image_url": bson.M{
				"bsonType": "string",
			},
		},
	},
}
