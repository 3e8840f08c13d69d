package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>FX Bank Teller API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "FX Bank Teller API",
    "version": "1.0.0"
  },
  "paths": {
    "/session": {
      "get": {
        "summary": "Get current session",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "responses": {
          "200": {
            "description": "Session view",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/SessionResponse"
                }
              }
            }
          },
          "401": {
            "description": "Unauthorized"
          }
        }
      }
    },
    "/pin": {
      "post": {
        "summary": "Change pin input",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "requestBody": {
          "required": false,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/ChangeFieldRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "Session view",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/SessionResponse"
                }
              }
            }
          },
          "401": {
            "description": "Unauthorized"
          }
        }
      }
    },
    "/deposit-amount": {
      "post": {
        "summary": "Change deposit amount input",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "requestBody": {
          "required": false,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/ChangeFieldRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "Session view",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/SessionResponse"
                }
              }
            }
          },
          "401": {
            "description": "Unauthorized"
          }
        }
      }
    },
    "/withdraw-amount": {
      "post": {
        "summary": "Change withdraw amount input",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "requestBody": {
          "required": false,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/ChangeFieldRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "Session view",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/SessionResponse"
                }
              }
            }
          },
          "401": {
            "description": "Unauthorized"
          }
        }
      }
    },
    "/login": {
      "post": {
        "summary": "Sign in with the stored or supplied pin",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "requestBody": {
          "required": false,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/LoginRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "Session view",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/SessionResponse"
                }
              }
            }
          },
          "401": {
            "description": "Unauthorized"
          }
        }
      }
    },
    "/deposit": {
      "post": {
        "summary": "Deposit the stored or supplied amount",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "requestBody": {
          "required": false,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/TransactionRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "Session view",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/SessionResponse"
                }
              }
            }
          },
          "401": {
            "description": "Unauthorized"
          }
        }
      }
    },
    "/withdraw": {
      "post": {
        "summary": "Withdraw the stored or supplied amount",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "requestBody": {
          "required": false,
          "content": {
            "application/json": {
              "schema": {
                "$ref": "#/components/schemas/TransactionRequest"
              }
            }
          }
        },
        "responses": {
          "200": {
            "description": "Session view",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/SessionResponse"
                }
              }
            }
          },
          "401": {
            "description": "Unauthorized"
          }
        }
      }
    },
    "/sign-out": {
      "post": {
        "summary": "Sign out and reset the session",
        "security": [
          {
            "BasicAuth": []
          }
        ],
        "responses": {
          "200": {
            "description": "Session view",
            "content": {
              "application/json": {
                "schema": {
                  "$ref": "#/components/schemas/SessionResponse"
                }
              }
            }
          },
          "401": {
            "description": "Unauthorized"
          }
        }
      }
    }
  },
  "components": {
    "securitySchemes": {
      "BasicAuth": {
        "type": "http",
        "scheme": "basic"
      }
    },
    "schemas": {
      "ChangeFieldRequest": {
        "type": "object",
        "properties": {
          "value": { "type": "string" }
        }
      },
      "LoginRequest": {
        "type": "object",
        "properties": {
          "pin": { "type": "string", "maxLength": 4 }
        }
      },
      "TransactionRequest": {
        "type": "object",
        "properties": {
          "amount": { "type": "string" }
        }
      },
      "FieldErrors": {
        "type": "object",
        "properties": {
          "pin": { "type": "string" },
          "deposit": { "type": "string" },
          "withdraw": { "type": "string" }
        }
      },
      "Account": {
        "type": "object",
        "properties": {
          "firstName": { "type": "string" },
          "lastName": { "type": "string" },
          "balance": { "type": "integer", "format": "int64" },
          "dailyLimit": { "type": "integer", "format": "int64" },
          "formattedBalance": { "type": "string", "example": "$500.00" },
          "formattedDailyLimit": { "type": "string", "example": "$100.00" }
        }
      },
      "SessionView": {
        "type": "object",
        "properties": {
          "phase": {
            "type": "string",
            "enum": ["LoggedOut", "Authenticating", "LoggedIn", "DepositPending", "WithdrawPending"]
          },
          "authenticated": { "type": "boolean" },
          "loading": { "type": "boolean" },
          "pinLength": { "type": "integer" },
          "depositAmount": { "type": "string" },
          "withdrawAmount": { "type": "string" },
          "errors": { "$ref": "#/components/schemas/FieldErrors" },
          "account": { "$ref": "#/components/schemas/Account" },
          "greeting": { "type": "string" },
          "canSignIn": { "type": "boolean" },
          "canDeposit": { "type": "boolean" },
          "canWithdraw": { "type": "boolean" }
        }
      },
      "SessionResponse": {
        "type": "object",
        "properties": {
          "success": { "type": "boolean" },
          "message": { "type": "string" },
          "code": { "type": "string", "example": "METHOD_NOT_ALLOWED" },
          "data": { "$ref": "#/components/schemas/SessionView" },
          "errors": { "type": "array", "items": { "type": "string" } }
        }
      }
    }
  }
}`
