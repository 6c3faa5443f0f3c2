package validate

// profileSchema constrains the YAML provisioning profile after conversion
// to JSON. Every field is optional; unset fields take the built-in
// defaults.
const profileSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "mkschroot provisioning profile",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "prefix": {
      "type": "string",
      "minLength": 1,
      "pattern": "^[a-z0-9][a-z0-9+.-]*$"
    },
    "schrootRoot": {
      "type": "string",
      "minLength": 1
    },
    "configRoot": {
      "type": "string",
      "minLength": 1
    },
    "includes": {
      "type": "array",
      "items": {
        "type": "string",
        "minLength": 1
      }
    },
    "groups": {
      "type": "array",
      "items": {
        "type": "string",
        "minLength": 1
      }
    },
    "rootGroups": {
      "type": "array",
      "items": {
        "type": "string",
        "minLength": 1
      }
    },
    "sourceRootUsers": {
      "type": "array",
      "items": {
        "type": "string",
        "minLength": 1
      }
    },
    "sourceRootGroups": {
      "type": "array",
      "items": {
        "type": "string",
        "minLength": 1
      }
    },
    "postCommands": {
      "type": "array",
      "items": {
        "type": "string",
        "minLength": 1
      }
    },
    "repositories": {
      "type": "array",
      "items": {
        "$ref": "#/definitions/repository"
      }
    }
  },
  "definitions": {
    "repository": {
      "type": "object",
      "additionalProperties": false,
      "required": ["url", "suite"],
      "properties": {
        "name": {
          "type": "string",
          "minLength": 1
        },
        "url": {
          "type": "string",
          "pattern": "^https?://"
        },
        "suite": {
          "type": "string",
          "minLength": 1
        },
        "components": {
          "type": "array",
          "items": {
            "type": "string",
            "minLength": 1
          }
        },
        "keyURL": {
          "type": "string",
          "pattern": "^https?://"
        }
      }
    }
  }
}`
