package webutil

import (
	"log"
	"reflect"
	"strings"

	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja"
)

// Validator はアプリケーション全体で共有されるバリデータインスタンスです。
var Validator *validator.Validate

// Trans はエラーメッセージを翻訳するためのトランスレータです。
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"hrv_score":         "HRVスコア",
	"heart_rate":        "心拍数",
	"rmssd":             "RMSSD",
	"stress_level":      "ストレス段階",
	"recovery_status":   "回復状態",
	"predicted_emotion": "予測感情",
	"actual_emotion":    "実測感情",
	"title":             "タイトル",
	"content":           "本文",
	"mood":              "気分",
	"rating":            "評価",
	"feedback":          "フィードバック",
	"user_response":     "回答",
	"hrv_before":        "開始時HRV",
	"hrv_after":         "完了時HRV",
	"notes":             "メモ",
}

func init() {
	Validator = validator.New()

	// JSONタグからフィールド名を取得するように設定
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// 日本語のロケールとトランスレータを設定
	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}

	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	// よく使うタグは日本語フィールド名つきのメッセージに上書きする
	registerTranslation := func(tag string, msg string) {
		Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		}, func(ut ut.Translator, fe validator.FieldError) string {
			fieldName := fe.Field()
			translatedFieldName, ok := fieldNameTranslations[fieldName]
			if !ok {
				translatedFieldName = fieldName
			}
			t, _ := ut.T(tag, translatedFieldName, fe.Param())
			return t
		})
	}

	registerTranslation("required", "{0}は必須項目です。")
	registerTranslation("oneof", "{0}に指定できない値が含まれています。")
	registerTranslation("max", "{0}は{1}以下で入力してください。")
	registerTranslation("min", "{0}は{1}以上で入力してください。")
	registerTranslation("gte", "{0}は{1}以上でなければなりません。")
	registerTranslation("lte", "{0}は{1}以下でなければなりません。")
}
